package todo_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/mocks"
	"github.com/modemobile/todo-rewards/internal/store"
	"github.com/modemobile/todo-rewards/internal/store/schema"
	"github.com/modemobile/todo-rewards/internal/todo"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

const testTodoID = "3f1c2a9e-8d4b-4c6e-9a7f-1b2c3d4e5f60"

var (
	testOwner = domain.MustParseAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	testNow   = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	testDue   = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
)

type testTodoMocks struct {
	store   *mocks.MockStore
	service todo.Service
}

func setupTodo(t *testing.T) *testTodoMocks {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(testNow).AnyTimes()

	tm := &testTodoMocks{store: mocks.NewMockStore(ctrl)}
	tm.service = todo.NewService(todo.Config{CacheTTL: time.Hour}, tm.store, clock)
	t.Cleanup(tm.service.Close)
	return tm
}

func validInput() todo.Input {
	return todo.Input{
		Title:       "Write tests",
		Description: "for the todo service",
		DueDate:     testDue,
		Priority:    domain.PriorityHigh,
	}
}

func todoRow(id string, completed bool) schema.Todo {
	return schema.Todo{
		ID:           id,
		OwnerAddress: testOwner.String(),
		Title:        "title " + id,
		DueDate:      testDue,
		Priority:     string(domain.PriorityMedium),
		Completed:    completed,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
}

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *todo.Input)
		errMsg string
	}{
		{name: "valid", modify: func(in *todo.Input) {}},
		{name: "empty title", modify: func(in *todo.Input) { in.Title = "   " }, errMsg: "title is required"},
		{name: "title too long", modify: func(in *todo.Input) { in.Title = strings.Repeat("a", 201) }, errMsg: "at most 200"},
		{name: "title at limit", modify: func(in *todo.Input) { in.Title = strings.Repeat("é", 200) }},
		{name: "missing due date", modify: func(in *todo.Input) { in.DueDate = time.Time{} }, errMsg: "due date is required"},
		{name: "invalid priority", modify: func(in *todo.Input) { in.Priority = "urgent" }, errMsg: "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)

			err := in.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidFormat)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestList_IncompleteFirst(t *testing.T) {
	tm := setupTodo(t)
	ctx := context.Background()

	tm.store.EXPECT().
		ListTodos(ctx, testOwner.String(), 20).
		Return([]schema.Todo{
			todoRow("a", true),
			todoRow("b", false),
			todoRow("c", true),
			todoRow("d", false),
		}, nil)

	todos, err := tm.service.List(ctx, testOwner)
	require.NoError(t, err)

	ids := make([]string, 0, len(todos))
	for _, td := range todos {
		ids = append(ids, td.ID)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids)
	assert.Equal(t, testOwner, todos[0].Owner)
}

func TestList_Cached(t *testing.T) {
	tm := setupTodo(t)
	ctx := context.Background()

	tm.store.EXPECT().
		ListTodos(ctx, testOwner.String(), 20).
		Return([]schema.Todo{todoRow("a", false)}, nil).
		Times(1)

	first, err := tm.service.List(ctx, testOwner)
	require.NoError(t, err)
	first[0].Title = "mutated"

	second, err := tm.service.List(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, "title a", second[0].Title)
}

func TestList_InvalidatedByWrite(t *testing.T) {
	tm := setupTodo(t)
	ctx := context.Background()

	gomock.InOrder(
		tm.store.EXPECT().ListTodos(ctx, testOwner.String(), 20).Return([]schema.Todo{}, nil),
		tm.store.EXPECT().CreateTodo(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, input store.CreateTodoInput) (*schema.Todo, error) {
				row := todoRow(input.ID, false)
				return &row, nil
			}),
		tm.store.EXPECT().ListTodos(ctx, testOwner.String(), 20).Return([]schema.Todo{todoRow("a", false)}, nil),
	)

	todos, err := tm.service.List(ctx, testOwner)
	require.NoError(t, err)
	assert.Empty(t, todos)

	_, err = tm.service.Create(ctx, testOwner, validInput())
	require.NoError(t, err)

	todos, err = tm.service.List(ctx, testOwner)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}

// expectBlockingList makes the next ListTodos of owner wait for release after
// signalling reading, then return rows
func (tm *testTodoMocks) expectBlockingList(owner domain.Address, rows []schema.Todo) (reading, release chan struct{}) {
	reading = make(chan struct{})
	release = make(chan struct{})
	tm.store.EXPECT().
		ListTodos(gomock.Any(), owner.String(), 20).
		DoAndReturn(func(context.Context, string, int) ([]schema.Todo, error) {
			close(reading)
			<-release
			return rows, nil
		})
	return reading, release
}

func (tm *testTodoMocks) expectCreate() {
	tm.store.EXPECT().CreateTodo(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input store.CreateTodoInput) (*schema.Todo, error) {
			row := todoRow(input.ID, false)
			row.OwnerAddress = input.OwnerAddress
			return &row, nil
		})
}

func TestList_WriteDuringReadIsNotCached(t *testing.T) {
	tm := setupTodo(t)
	ctx := context.Background()

	reading, release := tm.expectBlockingList(testOwner, []schema.Todo{todoRow("a", false)})
	tm.expectCreate()
	tm.store.EXPECT().
		ListTodos(gomock.Any(), testOwner.String(), 20).
		Return([]schema.Todo{todoRow("b", false), todoRow("a", false)}, nil)

	done := make(chan []domain.Todo)
	go func() {
		todos, err := tm.service.List(ctx, testOwner)
		assert.NoError(t, err)
		done <- todos
	}()

	<-reading
	_, err := tm.service.Create(ctx, testOwner, validInput())
	require.NoError(t, err)
	close(release)

	// the in-flight read still sees the rows from before the write
	assert.Len(t, <-done, 1)

	todos, err := tm.service.List(ctx, testOwner)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestList_WriteDuringReadIsNotCachedAfterEviction(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(testNow).AnyTimes()
	tm := &testTodoMocks{store: mocks.NewMockStore(ctrl)}
	tm.service = todo.NewService(todo.Config{CacheTTL: time.Hour, CacheSize: 1}, tm.store, clock)
	t.Cleanup(tm.service.Close)

	other := domain.MustParseAddress("0x00000000000000000000000000000000000000b2")
	ctx := context.Background()

	reading, release := tm.expectBlockingList(testOwner, []schema.Todo{todoRow("a", false)})
	tm.expectCreate()
	tm.expectCreate()
	tm.store.EXPECT().
		ListTodos(gomock.Any(), testOwner.String(), 20).
		Return([]schema.Todo{todoRow("b", false), todoRow("a", false)}, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := tm.service.List(ctx, testOwner)
		assert.NoError(t, err)
	}()

	<-reading
	_, err := tm.service.Create(ctx, testOwner, validInput())
	require.NoError(t, err)
	// a write by another owner pushes testOwner out of the tracked owners
	_, err = tm.service.Create(ctx, other, validInput())
	require.NoError(t, err)
	close(release)
	<-done

	todos, err := tm.service.List(ctx, testOwner)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestList_StoreError(t *testing.T) {
	tm := setupTodo(t)
	ctx := context.Background()

	tm.store.EXPECT().ListTodos(ctx, testOwner.String(), 20).Return(nil, errors.New("db down"))

	_, err := tm.service.List(ctx, testOwner)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list todos")
}

func TestCreate(t *testing.T) {
	tm := setupTodo(t)
	ctx := context.Background()

	in := validInput()
	in.Title = "  Write tests  "
	in.Completed = true

	tm.store.EXPECT().
		CreateTodo(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.CreateTodoInput) (*schema.Todo, error) {
			assert.NotEmpty(t, input.ID)
			assert.Equal(t, testOwner.String(), input.OwnerAddress)
			assert.Equal(t, "Write tests", input.Title)
			assert.Equal(t, testNow, input.CreatedAt)
			assert.Equal(t, "high", input.Priority)
			return &schema.Todo{
				ID:           input.ID,
				OwnerAddress: input.OwnerAddress,
				Title:        input.Title,
				Description:  input.Description,
				DueDate:      input.DueDate,
				Priority:     input.Priority,
				CreatedAt:    input.CreatedAt,
				UpdatedAt:    input.CreatedAt,
			}, nil
		})

	created, err := tm.service.Create(ctx, testOwner, in)
	require.NoError(t, err)
	assert.Equal(t, "Write tests", created.Title)
	assert.False(t, created.Completed)
	assert.Equal(t, domain.PriorityHigh, created.Priority)
}

func TestCreate_Invalid(t *testing.T) {
	tm := setupTodo(t)

	in := validInput()
	in.Title = ""

	_, err := tm.service.Create(context.Background(), testOwner, in)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
}

func TestUpdate(t *testing.T) {
	tm := setupTodo(t)
	ctx := context.Background()

	in := validInput()
	in.Completed = true

	tm.store.EXPECT().
		UpdateTodo(ctx, store.UpdateTodoInput{
			ID:           testTodoID,
			OwnerAddress: testOwner.String(),
			Title:        in.Title,
			Description:  in.Description,
			DueDate:      in.DueDate,
			Priority:     "high",
			Completed:    true,
			UpdatedAt:    testNow.UTC(),
		}).
		DoAndReturn(func(_ context.Context, input store.UpdateTodoInput) (*schema.Todo, error) {
			row := todoRow(input.ID, input.Completed)
			return &row, nil
		})

	updated, err := tm.service.Update(ctx, testOwner, testTodoID, in)
	require.NoError(t, err)
	assert.True(t, updated.Completed)
}

func TestUpdate_NotFound(t *testing.T) {
	tm := setupTodo(t)
	ctx := context.Background()

	tm.store.EXPECT().UpdateTodo(ctx, gomock.Any()).Return(nil, nil)

	_, err := tm.service.Update(ctx, testOwner, testTodoID, validInput())
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestUpdate_InvalidID(t *testing.T) {
	tm := setupTodo(t)

	_, err := tm.service.Update(context.Background(), testOwner, "not-a-uuid", validInput())
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
}

func TestDelete(t *testing.T) {
	tm := setupTodo(t)
	ctx := context.Background()

	tm.store.EXPECT().DeleteTodo(ctx, testOwner.String(), testTodoID).Return(true, nil)
	require.NoError(t, tm.service.Delete(ctx, testOwner, testTodoID))

	tm.store.EXPECT().DeleteTodo(ctx, testOwner.String(), testTodoID).Return(false, nil)
	assert.ErrorIs(t, tm.service.Delete(ctx, testOwner, testTodoID), domain.ErrTodoNotFound)
}

func TestMarkCompleted(t *testing.T) {
	tm := setupTodo(t)
	ctx := context.Background()

	row := todoRow(testTodoID, false)
	row.Description = "keep me"

	tm.store.EXPECT().GetTodo(ctx, testOwner.String(), testTodoID).Return(&row, nil)
	tm.store.EXPECT().
		UpdateTodo(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.UpdateTodoInput) (*schema.Todo, error) {
			assert.True(t, input.Completed)
			assert.Equal(t, row.Title, input.Title)
			assert.Equal(t, "keep me", input.Description)
			assert.Equal(t, row.Priority, input.Priority)
			assert.True(t, testNow.Equal(input.UpdatedAt))
			updated := row
			updated.Completed = true
			return &updated, nil
		})

	completed, err := tm.service.MarkCompleted(ctx, testOwner, testTodoID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)
}

func TestMarkCompleted_AlreadyCompleted(t *testing.T) {
	tm := setupTodo(t)
	ctx := context.Background()

	row := todoRow(testTodoID, true)
	tm.store.EXPECT().GetTodo(ctx, testOwner.String(), testTodoID).Return(&row, nil)

	completed, err := tm.service.MarkCompleted(ctx, testOwner, testTodoID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)
}

func TestMarkCompleted_NotFound(t *testing.T) {
	tm := setupTodo(t)
	ctx := context.Background()

	tm.store.EXPECT().GetTodo(ctx, testOwner.String(), testTodoID).Return(nil, nil)

	_, err := tm.service.MarkCompleted(ctx, testOwner, testTodoID)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestCompletedCount(t *testing.T) {
	tm := setupTodo(t)
	ctx := context.Background()

	tm.store.EXPECT().CountCompletedTodos(ctx, testOwner.String()).Return(int64(5), nil)

	count, err := tm.service.CompletedCount(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
