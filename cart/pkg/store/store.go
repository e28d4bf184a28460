package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/cart/pkg/response"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
)

type Operation string

const (
	OperationLoad   Operation = "load"
	OperationAdd    Operation = "add"
	OperationRemove Operation = "remove"
	OperationUpdate Operation = "update"
	OperationClear  Operation = "clear"
	OperationSettle Operation = "settle"
)

// MaxQuantity bounds a single line item. Adds and updates past it clamp so a
// quantity always fits an order item.
const MaxQuantity = math.MaxInt32

// Event is delivered to subscribers after a mutation has been applied and
// persisted. Items is a snapshot the subscriber may keep.
type Event struct {
	Operation Operation
	ProductID string
	Items     []response.CartItem
}

func (e Event) ItemCount() int { return itemCount(e.Items) }

func (e Event) Total() decimal.Decimal { return total(e.Items) }

// Store owns the cart line items. Every mutation is written through to
// Storage; write failures are logged and the in-memory state stays
// authoritative. Store never emits user-facing notifications.
type Store struct {
	mu      sync.RWMutex
	key     string
	storage Storage
	items   []response.CartItem

	subMu       sync.Mutex
	nextSubId   int
	subscribers map[int]func(Event)
}

// New rehydrates the cart persisted under key. Any failure to do so yields
// an empty cart.
func New(c context.Context, storage Storage, key string) *Store {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store New").
		Str(log.KeyCartKey, key).
		Str(log.KeyProcess, "rehydrating cart").
		Logger()

	logger.Info().Msg("rehydrating cart")
	c = logger.WithContext(c)
	// Rehydrate logs why persisted state was discarded.
	items, _ := Rehydrate(c, storage, key)
	logger.Info().Int(log.KeyCartItemCount, itemCount(items)).Msg("rehydrated cart")

	return &Store{
		key:         key,
		storage:     storage,
		items:       items,
		subscribers: map[int]func(Event){},
	}
}

// Rehydrate always returns a usable, possibly empty, item list. The error
// explains why persisted state was discarded. A missing key is not an error.
func Rehydrate(c context.Context, storage Storage, key string) ([]response.CartItem, error) {
	data, err := storage.Load(c, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []response.CartItem{}, nil
		}
		err = fmt.Errorf("failed loading cart with error=%w", err)
		zerolog.Ctx(c).Error().Err(err).Msg("starting with empty cart")
		return []response.CartItem{}, err
	}

	items, err := Decode(data)
	if err != nil {
		zerolog.Ctx(c).Error().
			Err(err).
			Int(log.KeyCartPayloadSize, len(data)).
			Msg("discarding persisted cart, starting with empty cart")
		return []response.CartItem{}, err
	}
	return items, nil
}

// Subscribe registers fn for every applied mutation. The returned function
// removes the subscription. fn runs on the mutating goroutine after the
// store lock is released.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubId
	s.nextSubId++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

// AddItem increments the existing line item for product or appends a new
// one, clamping the quantity to MaxQuantity. Stock is not checked. A
// quantity below one is rejected rather than treated as one.
func (s *Store) AddItem(c context.Context, product productResponse.Product, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("failed adding productId=%s quantity=%d with error=%w", product.ID, quantity, inErrors.ErrInvalidQuantity)
	}

	s.mutate(c, OperationAdd, product.ID, func(items []response.CartItem) ([]response.CartItem, bool) {
		idx := indexOf(items, product.ID)
		if idx < 0 {
			return append(items, response.CartItem{Product: product, Quantity: min(quantity, MaxQuantity)}), true
		}
		items[idx].Quantity = clampedSum(items[idx].Quantity, quantity)
		return items, true
	})
	return nil
}

// RemoveItem reports whether a line item was removed.
func (s *Store) RemoveItem(c context.Context, productID string) bool {
	return s.mutate(c, OperationRemove, productID, func(items []response.CartItem) ([]response.CartItem, bool) {
		idx := indexOf(items, productID)
		if idx < 0 {
			return items, false
		}
		return slices.Delete(items, idx, idx+1), true
	})
}

// UpdateQuantity replaces the quantity of an existing line item, clamped to
// MaxQuantity. A quantity of zero or below removes it. It reports whether
// the cart changed.
func (s *Store) UpdateQuantity(c context.Context, productID string, quantity int) bool {
	if quantity <= 0 {
		return s.RemoveItem(c, productID)
	}

	return s.mutate(c, OperationUpdate, productID, func(items []response.CartItem) ([]response.CartItem, bool) {
		idx := indexOf(items, productID)
		if idx < 0 {
			return items, false
		}
		items[idx].Quantity = min(quantity, MaxQuantity)
		return items, true
	})
}

func (s *Store) ClearCart(c context.Context) {
	s.mutate(c, OperationClear, "", func(items []response.CartItem) ([]response.CartItem, bool) {
		return []response.CartItem{}, true
	})
}

// SettleItems takes the quantities in ordered out of the cart, dropping line
// items that reach zero. Items added after ordered was read stay in the cart.
// With no concurrent mutation this empties the cart.
func (s *Store) SettleItems(c context.Context, ordered []response.CartItem) {
	s.mutate(c, OperationSettle, "", func(items []response.CartItem) ([]response.CartItem, bool) {
		remaining := make([]response.CartItem, 0, len(items))
		for _, item := range items {
			if idx := indexOf(ordered, item.Product.ID); idx >= 0 {
				item.Quantity -= ordered[idx].Quantity
			}
			if item.Quantity > 0 {
				remaining = append(remaining, item)
			}
		}
		return remaining, true
	})
}

func (s *Store) Items() []response.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return itemCount(s.items)
}

// Total is recomputed from the current line items on every call.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return total(s.items)
}

func (s *Store) Summary() response.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.items)
}

// Summarize builds the order summary for items. Shipping and tax are settled
// at checkout, so the estimated total equals the subtotal.
func Summarize(items []response.CartItem) response.Cart {
	subtotal := total(items)
	return response.Cart{
		Items:          slices.Clone(items),
		ItemCount:      itemCount(items),
		Subtotal:       subtotal,
		Shipping:       response.CalculatedAtCheckout,
		Tax:            response.CalculatedAtCheckout,
		EstimatedTotal: subtotal,
	}
}

// mutate applies fn to a copy of the items. When fn reports a change the
// copy replaces the current items, is persisted and is published.
func (s *Store) mutate(
	c context.Context,
	operation Operation,
	productID string,
	fn func([]response.CartItem) ([]response.CartItem, bool),
) bool {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store mutate").
		Str(log.KeyCartKey, s.key).
		Str(log.KeyProcess, string(operation)).
		Str(log.KeyProductID, productID).
		Logger()

	s.mu.Lock()
	next, changed := fn(slices.Clone(s.items))
	if !changed {
		s.mu.Unlock()
		logger.Trace().Msg("cart unchanged")
		return false
	}
	s.items = next
	snapshot := slices.Clone(next)
	s.persist(logger.WithContext(c), snapshot)
	s.mu.Unlock()

	logger.Trace().Int(log.KeyCartItemCount, itemCount(snapshot)).Msg("cart changed")
	s.publish(Event{Operation: operation, ProductID: productID, Items: snapshot})
	return true
}

func (s *Store) persist(c context.Context, items []response.CartItem) {
	logger := zerolog.Ctx(c)

	data, err := Encode(items)
	if err != nil {
		err = fmt.Errorf("failed encoding cart with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}

	if err = s.storage.Save(c, s.key, data); err != nil {
		err = fmt.Errorf("failed persisting cart with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
	}
}

func (s *Store) publish(event Event) {
	s.subMu.Lock()
	subscribers := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subscribers {
		fn(event)
	}
}

func indexOf(items []response.CartItem, productID string) int {
	return slices.IndexFunc(items, func(item response.CartItem) bool {
		return item.Product.ID == productID
	})
}

func clampedSum(existing, quantity int) int {
	if existing > MaxQuantity-quantity {
		return MaxQuantity
	}
	return existing + quantity
}

func itemCount(items []response.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

func total(items []response.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}
