package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/TicketXOS/CRM-sub001/internal/database"
	apperrors "github.com/TicketXOS/CRM-sub001/internal/errors"
	"github.com/TicketXOS/CRM-sub001/internal/model"
	"github.com/TicketXOS/CRM-sub001/internal/repository"
)

const orderNoChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// orderTransitions lists the allowed status moves. cancelled restores stock
// and is only reachable before shipping.
var orderTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending: {model.OrderStatusPaid, model.OrderStatusCancelled},
	model.OrderStatusPaid:    {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped: {model.OrderStatusCompleted},
}

type OrderService struct {
	db           *database.DB
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

func NewOrderService(
	db *database.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *OrderService {
	return &OrderService{
		db:           db,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

type OrderListResult struct {
	Orders []model.Order `json:"orders"`
	Total  int           `json:"total"`
}

// Create validates the customer and every line item, then decrements stock
// and writes the order and its items in a single transaction.
func (s *OrderService) Create(ctx context.Context, params model.CreateOrderParams) (*model.Order, error) {
	if params.CustomerID == "" {
		return nil, apperrors.MissingRequired("customerId")
	}
	if len(params.Items) == 0 {
		return nil, apperrors.MissingRequired("items")
	}
	for _, item := range params.Items {
		if item.ProductID == "" {
			return nil, apperrors.MissingRequired("items[].productId")
		}
		if item.Quantity <= 0 {
			return nil, apperrors.InvalidInput("items[].quantity", "must be positive")
		}
	}

	customer, err := s.customerRepo.FindByID(ctx, params.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, apperrors.NotFound("Customer")
	}

	order := &model.Order{
		OrderNo:    generateOrderNo(),
		CustomerID: params.CustomerID,
		Status:     model.OrderStatusPending,
	}

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		var total int64
		items := make([]model.OrderItem, 0, len(params.Items))

		for _, line := range params.Items {
			product, err := productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				return fmt.Errorf("find product: %w", err)
			}
			if product == nil {
				return apperrors.NotFound("Product")
			}
			if !product.Active {
				return apperrors.InvalidState(fmt.Sprintf("product %s is inactive", product.SKU))
			}

			applied, err := productRepo.AdjustStock(ctx, product.ID, -line.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if !applied {
				return apperrors.InvalidState(
					fmt.Sprintf("insufficient stock for %s: have %d, requested %d",
						product.SKU, product.Stock, line.Quantity))
			}

			total += product.PriceCents * int64(line.Quantity)
			items = append(items, model.OrderItem{
				ProductID:      product.ID,
				Quantity:       line.Quantity,
				UnitPriceCents: product.PriceCents,
			})
		}

		order.TotalCents = total
		if err := orderRepo.Insert(ctx, order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
			if err := orderRepo.InsertItem(ctx, &items[i]); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("orderId", order.ID).
		Str("orderNo", order.OrderNo).
		Str("customerId", order.CustomerID).
		Int64("totalCents", order.TotalCents).
		Msg("order created")

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, apperrors.NotFound("Order")
	}

	items, err := s.orderRepo.FindItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order items: %w", err)
	}
	order.Items = items
	return order, nil
}

func (s *OrderService) List(ctx context.Context, filter model.ListOrdersFilter) (*OrderListResult, error) {
	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	if orders == nil {
		orders = []model.Order{}
	}
	return &OrderListResult{Orders: orders, Total: total}, nil
}

// UpdateStatus advances an order through pending, paid, shipped and
// completed, or cancels it from pending/paid. Cancelling restores the
// reserved stock in the same transaction.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, next model.OrderStatus) (*model.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(order.Status, next) {
		return nil, apperrors.InvalidState(
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		// The guarded update settles races between concurrent writers:
		// only the one that still sees the old status wins.
		moved, err := s.orderRepo.WithTx(tx).UpdateStatus(ctx, id, order.Status, next)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if !moved {
			return apperrors.InvalidState(
				fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
		}

		if next == model.OrderStatusCancelled {
			productRepo := s.productRepo.WithTx(tx)
			for _, item := range order.Items {
				if _, err := productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
					return fmt.Errorf("restore stock: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("orderId", id).
		Str("from", string(order.Status)).
		Str("to", string(next)).
		Msg("order status updated")

	return s.Get(ctx, id)
}

func transitionAllowed(from, to model.OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func generateOrderNo() string {
	chars := []byte(orderNoChars)
	suffix := make([]byte, 6)
	for i := range suffix {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		suffix[i] = chars[n.Int64()]
	}
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), string(suffix))
}
