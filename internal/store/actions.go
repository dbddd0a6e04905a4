package store

import "github.com/abgdnv/productcompare/internal/product"

// ActionType tags an Action with the transition it requests.
type ActionType string

const (
	ActionFetchPending    ActionType = "products/fetchProducts/pending"
	ActionFetchFulfilled  ActionType = "products/fetchProducts/fulfilled"
	ActionFetchRejected   ActionType = "products/fetchProducts/rejected"
	ActionFilterProducts  ActionType = "products/filterProducts"
	ActionLoadAllProducts ActionType = "products/loadAllProducts"
)

// Action is a tagged state transition. Only the fields of its Type are read:
// Products for fulfilled and load-all, IDs for filter, Message for rejected.
type Action struct {
	Type     ActionType
	Products []product.Product
	IDs      []int
	Message  string
}

// Pending starts a fetch.
func Pending() Action {
	return Action{Type: ActionFetchPending}
}

// Fulfilled settles a fetch with the fetched catalog.
func Fulfilled(products []product.Product) Action {
	return Action{Type: ActionFetchFulfilled, Products: products}
}

// Rejected settles a fetch with an error message.
func Rejected(message string) Action {
	return Action{Type: ActionFetchRejected, Message: message}
}

// Filter narrows the comparison subset to ids.
func Filter(ids []int) Action {
	return Action{Type: ActionFilterProducts, IDs: ids}
}

// LoadAll replaces the comparison subset with items.
func LoadAll(items []product.Product) Action {
	return Action{Type: ActionLoadAllProducts, Products: items}
}

// Reduce applies a to s. Unknown action types leave s unchanged.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionFetchPending:
		return BeginFetch(s)
	case ActionFetchFulfilled:
		return FetchSucceeded(s, a.Products)
	case ActionFetchRejected:
		return FetchFailed(s, a.Message)
	case ActionFilterProducts:
		return FilterProducts(s, a.IDs)
	case ActionLoadAllProducts:
		return LoadAllProducts(s, a.Products)
	default:
		return s
	}
}
