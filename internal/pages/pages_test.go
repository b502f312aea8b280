package pages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/horseclub-web/internal/clubapi"
	"github.com/magabrotheeeer/horseclub-web/internal/filter"
	"github.com/magabrotheeeer/horseclub-web/internal/models"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// MockAPI реализует интерфейсы API всех страниц.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListNews(ctx context.Context, q filter.State) ([]models.NewsItem, error) {
	args := m.Called(ctx, q)
	if res := args.Get(0); res != nil {
		return res.([]models.NewsItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) News(ctx context.Context, id int) (*models.NewsItem, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.NewsItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) CreateNews(ctx context.Context, form models.NewsForm) error {
	return m.Called(ctx, form).Error(0)
}

func (m *MockAPI) UpdateNews(ctx context.Context, id int, form models.NewsForm) error {
	return m.Called(ctx, id, form).Error(0)
}

func (m *MockAPI) DeleteNews(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) ListTrainers(ctx context.Context, q filter.State) ([]models.Trainer, error) {
	args := m.Called(ctx, q)
	if res := args.Get(0); res != nil {
		return res.([]models.Trainer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) ListHorses(ctx context.Context, q filter.State) ([]models.Horse, error) {
	args := m.Called(ctx, q)
	if res := args.Get(0); res != nil {
		return res.([]models.Horse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPI) ListExams(ctx context.Context) ([]models.Exam, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]models.Exam), args.Error(1)
	}
	return nil, args.Error(1)
}

func published(s string) *models.Timestamp {
	ts := models.ParseTimestamp(s)
	return &ts
}

func listedNews() []models.NewsItem {
	return []models.NewsItem{
		{ID: 7, Title: "seven", Content: "c7", PublishedAt: published("2024-05-01T10:00:00Z"), IsActive: true},
		{ID: 42, Title: "forty two", Content: "c42", PublishedAt: published("2024-06-01T12:30:45Z"), IsActive: false},
		{ID: 3, Title: "three", Content: "c3"},
	}
}

func newsIDs(items []models.NewsItem) []int {
	out := make([]int, len(items))
	for i, n := range items {
		out[i] = n.ID
	}
	return out
}

func mountedNewsList(t *testing.T, api *MockAPI) *NewsList {
	t.Helper()
	p := NewNewsList(api, newNoopLogger())
	p.Mount(context.Background())
	return p
}

func TestNewsList_MountSortsWithoutTruncation(t *testing.T) {
	api := new(MockAPI)
	api.On("ListNews", mock.Anything, filter.State{}).Return(listedNews(), nil)

	p := mountedNewsList(t, api)

	state := p.State()
	assert.False(t, state.Loading)
	assert.Equal(t, []int{42, 7, 3}, newsIDs(state.Items))
	assert.False(t, state.Form.Show)
	assert.True(t, state.Form.Fields.IsActive)
}

func TestNewsList_StateSanitizesContent(t *testing.T) {
	api := new(MockAPI)
	api.On("ListNews", mock.Anything, filter.State{}).Return([]models.NewsItem{
		{ID: 1, Title: "t", Content: `<p>ok</p><img src=x onerror=alert(1)><script>alert(2)</script>`},
	}, nil)

	p := mountedNewsList(t, api)

	state := p.State()
	require.Len(t, state.Items, 1)
	assert.Contains(t, state.Items[0].Content, "<p>ok</p>")
	assert.NotContains(t, state.Items[0].Content, "<script")
	assert.NotContains(t, state.Items[0].Content, "onerror")
}

func TestNewsList_SubmitCreatePosts(t *testing.T) {
	api := new(MockAPI)
	api.On("ListNews", mock.Anything, filter.State{}).Return(listedNews(), nil)
	form := models.NewsForm{Title: "new", Content: "body", IsActive: true}
	api.On("CreateNews", mock.Anything, form).Return(nil).Once()

	p := mountedNewsList(t, api)
	p.OpenCreate()
	require.True(t, p.State().Form.Show)

	notice, err := p.Submit(context.Background(), form)

	require.NoError(t, err)
	assert.Equal(t, NoticeCreated, notice)
	assert.False(t, p.State().Form.Show)
	api.AssertNotCalled(t, "UpdateNews", mock.Anything, mock.Anything, mock.Anything)
	api.AssertNumberOfCalls(t, "ListNews", 2)
}

func TestNewsList_SubmitEditPutsToCurrentID(t *testing.T) {
	api := new(MockAPI)
	api.On("ListNews", mock.Anything, filter.State{}).Return(listedNews(), nil)

	p := mountedNewsList(t, api)
	require.NoError(t, p.OpenEdit(42))

	state := p.State()
	require.True(t, state.Form.EditMode)
	assert.Equal(t, 42, state.Form.EditID)
	assert.Equal(t, "2024-06-01T12:30", state.Form.Fields.PublishedAt)
	assert.Equal(t, "forty two", state.Form.Fields.Title)
	assert.False(t, state.Form.Fields.IsActive)
	assert.Nil(t, state.Form.Fields.Image)

	edited := state.Form.Fields
	edited.Title = "forty two (upd)"
	api.On("UpdateNews", mock.Anything, 42, edited).Return(nil).Once()

	notice, err := p.Submit(context.Background(), edited)

	require.NoError(t, err)
	assert.Equal(t, NoticeUpdated, notice)
	after := p.State()
	assert.False(t, after.Form.Show)
	assert.False(t, after.Form.EditMode)
	assert.Zero(t, after.Form.EditID)
	api.AssertNotCalled(t, "CreateNews", mock.Anything, mock.Anything)
}

func TestNewsList_SubmitFailureKeepsForm(t *testing.T) {
	api := new(MockAPI)
	api.On("ListNews", mock.Anything, filter.State{}).Return(listedNews(), nil)
	form := models.NewsForm{Title: "t", Content: "c"}
	api.On("CreateNews", mock.Anything, form).Return(fmt.Errorf("clubapi.CreateNews: %w", clubapi.ErrUnexpectedStatus))

	p := mountedNewsList(t, api)
	p.OpenCreate()

	notice, err := p.Submit(context.Background(), form)

	assert.Error(t, err)
	assert.Equal(t, NoticeFailed, notice)
	assert.True(t, p.State().Form.Show)
	api.AssertNumberOfCalls(t, "ListNews", 1)
}

func TestNewsList_SubmitFailureDropsImage(t *testing.T) {
	api := new(MockAPI)
	api.On("ListNews", mock.Anything, filter.State{}).Return(listedNews(), nil)
	api.On("CreateNews", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	p := mountedNewsList(t, api)
	p.OpenCreate()

	form := models.NewsForm{
		Title:   "с фото",
		Content: "c",
		Image:   &models.Image{Filename: "horse.png", Body: strings.NewReader("png")},
	}
	_, err := p.Submit(context.Background(), form)
	require.Error(t, err)

	fields := p.State().Form.Fields
	assert.Equal(t, "с фото", fields.Title)
	assert.Nil(t, fields.Image)
	require.NotNil(t, form.Image)
}

func TestNewsList_SubmitValidation(t *testing.T) {
	api := new(MockAPI)
	api.On("ListNews", mock.Anything, filter.State{}).Return(listedNews(), nil)

	p := mountedNewsList(t, api)
	p.OpenCreate()

	notice, err := p.Submit(context.Background(), models.NewsForm{Content: "no title"})

	assert.Error(t, err)
	assert.Equal(t, NoticeFailed, notice)
	api.AssertNotCalled(t, "CreateNews", mock.Anything, mock.Anything)
}

func TestNewsList_OpenEditUnknown(t *testing.T) {
	api := new(MockAPI)
	api.On("ListNews", mock.Anything, filter.State{}).Return(listedNews(), nil)

	p := mountedNewsList(t, api)

	assert.ErrorIs(t, p.OpenEdit(1000), ErrNotListed)
	assert.False(t, p.State().Form.Show)
}

func TestNewsList_Cancel(t *testing.T) {
	api := new(MockAPI)
	api.On("ListNews", mock.Anything, filter.State{}).Return(listedNews(), nil)

	p := mountedNewsList(t, api)
	require.NoError(t, p.OpenEdit(7))
	p.Cancel()

	state := p.State()
	assert.False(t, state.Form.Show)
	assert.False(t, state.Form.EditMode)
}

func TestNewsList_Delete(t *testing.T) {
	tests := []struct {
		name        string
		confirmed   bool
		deleteErr   error
		expectCall  bool
		expectIDs   []int
		expectError bool
	}{
		{
			name:       "подтверждённое удаление",
			confirmed:  true,
			expectCall: true,
			expectIDs:  []int{42, 3},
		},
		{
			name:      "отмена не отправляет запрос",
			confirmed: false,
			expectIDs: []int{42, 7, 3},
		},
		{
			name:       "ответ не ok всё равно убирает локально",
			confirmed:  true,
			deleteErr:  &clubapi.StatusError{Code: 500},
			expectCall: true,
			expectIDs:  []int{42, 3},
		},
		{
			name:        "сбой сети оставляет список",
			confirmed:   true,
			deleteErr:   errors.New("connection refused"),
			expectCall:  true,
			expectIDs:   []int{42, 7, 3},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockAPI)
			api.On("ListNews", mock.Anything, filter.State{}).Return(listedNews(), nil).Once()
			if tt.expectCall {
				api.On("DeleteNews", mock.Anything, 7).Return(tt.deleteErr).Once()
			}

			p := mountedNewsList(t, api)
			_, err := p.Delete(context.Background(), 7, tt.confirmed)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectIDs, newsIDs(p.State().Items))
			if !tt.expectCall {
				api.AssertNotCalled(t, "DeleteNews", mock.Anything, mock.Anything)
			}
			api.AssertNumberOfCalls(t, "ListNews", 1)
			api.AssertExpectations(t)
		})
	}
}

func TestAfExam_OnlyPublicRows(t *testing.T) {
	api := new(MockAPI)
	api.On("ListExams", mock.Anything).Return([]models.Exam{
		{ID: 1, Title: "public", IsPublic: true, Users: []string{"a@club.ru"}},
		{ID: 2, Title: "hidden", IsPublic: false},
		{ID: 3, Title: "public too", IsPublic: true},
	}, nil)

	p := NewAfExam(api, newNoopLogger(), "Фролов Александр Дмитриевич", "231-322")
	p.Mount(context.Background())

	state := p.State()
	require.Len(t, state.Exams, 2)
	for _, e := range state.Exams {
		assert.True(t, e.IsPublic)
	}
	assert.Equal(t, "231-322", state.Group)
}

func TestAfExam_FailureEndsNotLoading(t *testing.T) {
	api := new(MockAPI)
	api.On("ListExams", mock.Anything).Return(nil, clubapi.ErrDecode)

	p := NewAfExam(api, newNoopLogger(), "", "")
	p.Mount(context.Background())

	state := p.State()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Exams)
}

func TestFilterDemo_ChangeFetchesOnlyThatResource(t *testing.T) {
	api := new(MockAPI)
	api.On("ListNews", mock.Anything, filter.News()).Return([]models.NewsItem{{ID: 1}}, nil).Once()
	api.On("ListTrainers", mock.Anything, filter.Trainers()).Return([]models.Trainer{{ID: 1}}, nil).Once()
	api.On("ListHorses", mock.Anything, filter.Horses()).Return([]models.Horse{{ID: 1}, {ID: 2}}, nil).Once()

	p := NewFilterDemo(api, newNoopLogger())
	p.Mount(context.Background())

	mares := filter.Horses().With("gender", "female")
	api.On("ListHorses", mock.Anything, mares).Return([]models.Horse{{ID: 2, Gender: models.GenderFemale}}, nil).Once()

	require.NoError(t, p.Change(context.Background(), TabHorses, "gender", "female"))
	p.SetTab(TabHorses)

	state := p.State()
	assert.Equal(t, TabHorses, state.Tab)
	assert.Equal(t, mares.Fields(), state.Filters.Fields())
	require.Len(t, state.Horses, 1)
	assert.Equal(t, 2, state.Horses[0].ID)
	assert.Empty(t, state.News)

	api.AssertNumberOfCalls(t, "ListNews", 1)
	api.AssertNumberOfCalls(t, "ListTrainers", 1)
	api.AssertNumberOfCalls(t, "ListHorses", 2)
}

func TestFilterDemo_UnknownField(t *testing.T) {
	api := new(MockAPI)
	p := NewFilterDemo(api, newNoopLogger())

	err := p.Change(context.Background(), TabTrainers, "gender", "male")

	assert.ErrorIs(t, err, ErrUnknownField)
	api.AssertNotCalled(t, "ListTrainers", mock.Anything, mock.Anything)
}

func TestFilterDemo_ClearRefetches(t *testing.T) {
	api := new(MockAPI)
	named := filter.Trainers().With("name", "Anna")
	api.On("ListTrainers", mock.Anything, named).Return([]models.Trainer{{ID: 1}}, nil).Once()
	api.On("ListTrainers", mock.Anything, filter.Trainers()).Return([]models.Trainer{{ID: 1}, {ID: 2}}, nil).Once()

	p := NewFilterDemo(api, newNoopLogger())
	require.NoError(t, p.Change(context.Background(), TabTrainers, "name", "Anna"))
	p.Clear(context.Background(), TabTrainers)
	p.SetTab(TabTrainers)

	state := p.State()
	assert.Equal(t, filter.Trainers().Fields(), state.Filters.Fields())
	assert.Len(t, state.Trainers, 2)
	api.AssertExpectations(t)
}

func TestFilterDemo_FailureKeepsPreviousList(t *testing.T) {
	api := new(MockAPI)
	api.On("ListNews", mock.Anything, filter.News()).Return([]models.NewsItem{{ID: 1}, {ID: 2}}, nil).Once()
	broken := filter.News().With("title", "x")
	api.On("ListNews", mock.Anything, broken).Return(nil, clubapi.ErrDecode).Once()

	p := NewFilterDemo(api, newNoopLogger())
	p.Clear(context.Background(), TabNews)
	require.NoError(t, p.Change(context.Background(), TabNews, "title", "x"))

	state := p.State()
	assert.False(t, state.Loading)
	assert.Len(t, state.News, 2)
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("trainers")
	require.NoError(t, err)
	assert.Equal(t, TabTrainers, tab)

	_, err = ParseTab("lessons")
	assert.ErrorIs(t, err, ErrUnknownTab)
}

func TestHome_MountsAllWidgets(t *testing.T) {
	api := new(MockAPI)
	api.On("ListNews", mock.Anything, filter.State{}).Return(listedNews(), nil)
	api.On("ListTrainers", mock.Anything, filter.State{}).Return([]models.Trainer{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}, nil)
	api.On("ListHorses", mock.Anything, filter.State{}).Return(nil, errors.New("boom"))

	h := NewHome(api, newNoopLogger(), nil)
	h.Mount(context.Background())

	state := h.State()
	assert.Len(t, state.News.Items, 3)
	assert.Len(t, state.Trainers.Items, 3)
	assert.Empty(t, state.Horses.Items)
	assert.False(t, state.Horses.Loading)
}

func TestFilterDemo_Apply(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		expect    filter.State
		expectErr error
	}{
		{
			name:   "форма целиком",
			values: url.Values{"title": {"турнир"}, "is_active": {"false"}, "published_after": {""}},
			expect: filter.News().With("title", "турнир").With("is_active", "false"),
		},
		{
			name:      "неизвестное поле",
			values:    url.Values{"gender": {"male"}},
			expectErr: ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockAPI)
			if tt.expectErr == nil {
				api.On("ListNews", mock.Anything, tt.expect).Return([]models.NewsItem{{ID: 1}}, nil).Once()
			}

			p := NewFilterDemo(api, newNoopLogger())
			err := p.Apply(context.Background(), TabNews, tt.values)

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Equal(t, filter.News().Fields(), p.Filters(TabNews).Fields())
				api.AssertNotCalled(t, "ListNews", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect.Fields(), p.Filters(TabNews).Fields())
			api.AssertExpectations(t)
		})
	}
}

func TestFilterDemo_ApplyUnknownTab(t *testing.T) {
	p := NewFilterDemo(new(MockAPI), newNoopLogger())
	assert.ErrorIs(t, p.Apply(context.Background(), Tab("lessons"), url.Values{}), ErrUnknownTab)
}
