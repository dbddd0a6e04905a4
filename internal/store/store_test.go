package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/abgdnv/productcompare/internal/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchProducts(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	var products []product.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]product.Product)
	}
	return products, args.Error(1)
}

// gatedFetcher blocks every fetch until its gate channel yields a result.
type gatedFetcher struct {
	gates chan chan FetchResult
}

func (g *gatedFetcher) FetchProducts(ctx context.Context) ([]product.Product, error) {
	gate := make(chan FetchResult)
	g.gates <- gate
	res := <-gate
	return res.Products, res.Err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitResult(t *testing.T, ch <-chan FetchResult) FetchResult {
	t.Helper()
	select {
	case res, ok := <-ch:
		require.True(t, ok, "result channel closed without a result")
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not settle")
		return FetchResult{}
	}
}

func Test_Store_RunFetch(t *testing.T) {
	products := mockProducts()
	testCases := []struct {
		name          string
		products      []product.Product
		fetchErr      error
		expectedState State
	}{
		{
			name:     "fulfilled",
			products: products,
			expectedState: State{
				Products:         products,
				FilteredProducts: products,
				Loading:          false,
			},
		},
		{
			name:     "rejected",
			fetchErr: errors.New("Network error"),
			expectedState: State{
				Products:         []product.Product{},
				FilteredProducts: []product.Product{},
				Error:            strPtr("Network error"),
				Loading:          false,
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			fetcher := new(mockFetcher)
			fetcher.On("FetchProducts", mock.Anything).Return(tc.products, tc.fetchErr).Once()
			s := NewStore(fetcher, testLogger())

			var mu sync.Mutex
			var seen []ActionType
			s.Subscribe(func(a Action, _ State) {
				mu.Lock()
				defer mu.Unlock()
				seen = append(seen, a.Type)
			})

			// when
			res := waitResult(t, s.RunFetch(context.Background()))

			// then
			assert.Equal(t, tc.fetchErr, res.Err)
			assert.Equal(t, tc.products, res.Products)
			assert.Equal(t, tc.expectedState, s.State())
			mu.Lock()
			defer mu.Unlock()
			settle := ActionFetchFulfilled
			if tc.fetchErr != nil {
				settle = ActionFetchRejected
			}
			assert.Equal(t, []ActionType{ActionFetchPending, settle}, seen)
			fetcher.AssertExpectations(t)
		})
	}
}

func Test_Store_RunFetch_PendingBeforeReturn(t *testing.T) {
	// given
	fetcher := &gatedFetcher{gates: make(chan chan FetchResult)}
	s := NewStore(fetcher, testLogger())

	// when
	done := s.RunFetch(context.Background())

	// then
	assert.True(t, s.State().Loading)
	gate := <-fetcher.gates
	assert.True(t, s.State().Loading)
	gate <- FetchResult{Products: mockProducts()}
	waitResult(t, done)
	assert.False(t, s.State().Loading)

	_, open := <-done
	assert.False(t, open, "channel is closed after the single result")
}

func Test_Store_RunFetch_LastSettleWins(t *testing.T) {
	// given
	fetcher := &gatedFetcher{gates: make(chan chan FetchResult)}
	s := NewStore(fetcher, testLogger())
	products := mockProducts()

	first := s.RunFetch(context.Background())
	firstGate := <-fetcher.gates
	second := s.RunFetch(context.Background())
	secondGate := <-fetcher.gates

	// when
	secondGate <- FetchResult{Products: products[:1]}
	waitResult(t, second)
	firstGate <- FetchResult{Err: errors.New("Network error")}
	waitResult(t, first)

	// then
	state := s.State()
	assert.Equal(t, strPtr("Network error"), state.Error)
	assert.False(t, state.Loading)
	assert.Equal(t, []int{1}, product.IDs(state.Products))
}

func Test_Store_DispatchAndUnsubscribe(t *testing.T) {
	// given
	s := NewStore(new(mockFetcher), testLogger())
	calls := 0
	unsubscribe := s.Subscribe(func(a Action, st State) {
		calls++
		assert.Equal(t, st, s.State())
	})

	// when
	s.Dispatch(Fulfilled(mockProducts()))
	filtered := s.Dispatch(Filter([]int{2, 3}))
	unsubscribe()
	reset := s.Dispatch(LoadAll(s.State().Products))

	// then
	assert.Equal(t, 2, calls)
	assert.Equal(t, []int{2, 3}, product.IDs(filtered.FilteredProducts))
	assert.Equal(t, []int{1, 2, 3}, product.IDs(reset.FilteredProducts))
	assert.Equal(t, reset, s.State())
}

func Test_Store_ConcurrentDispatch(t *testing.T) {
	// given
	s := NewStore(new(mockFetcher), testLogger())
	s.Dispatch(Fulfilled(mockProducts()))

	// when
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(LoadAll(s.State().Products))
			_ = s.State()
		}()
	}
	wg.Wait()

	// then
	assert.Equal(t, []int{1, 2, 3}, product.IDs(s.State().FilteredProducts))
}
