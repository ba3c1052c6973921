package service

import (
	"context"
	"errors"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/pkg/logger"
)

var (
	ErrSessionRequired  = errors.New("cart session id is required")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

// AddItemInput is one "add to cart" click: the product plus the phone
// selection it was configured against.
type AddItemInput struct {
	ProductID uint           `json:"product_id" binding:"required"`
	Quantity  int            `json:"quantity"`
	BrandID   uint           `json:"brand_id" binding:"required"`
	ModelID   uint           `json:"model_id" binding:"required"`
	CaseType  model.CaseType `json:"case_type" binding:"required"`
}

// CartLine is a cart item joined with its resolved display data. Prices are
// never stored in the cart; they are resolved on every read so lines always
// reflect current pricing.
type CartLine struct {
	model.CartItem
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

type CartDetail struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	ItemCount int        `json:"item_count"`
	Total     float64    `json:"total"`
}

// CartService manages session carts. Lines merge by product id, and adding
// re-checks availability so a phone hidden since the page loaded cannot be
// carted.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*CartDetail, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartDetail, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID uint, quantity int) (*CartDetail, error)
	RemoveItem(ctx context.Context, sessionID string, productID uint) (*CartDetail, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	compat      CompatibilityService
	views       ProductViewService
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	compat CompatibilityService,
	views ProductViewService,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		compat:      compat,
		views:       views,
	}
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*CartDetail, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(cart)
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartDetail, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	if !input.CaseType.Valid() {
		return nil, ErrInvalidCaseType
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(input.ProductID); err != nil {
		return nil, ErrProductNotFound
	}

	// Availability is re-checked at add time. The catalog page the shopper
	// is looking at may predate an admin hiding this model.
	available, err := s.compat.IsModelAvailable(input.ModelID, input.CaseType)
	if err != nil {
		return nil, err
	}
	if !available {
		logger.Warn("Rejected cart add for unavailable model", map[string]interface{}{
			"session_id": sessionID,
			"product_id": input.ProductID,
			"model_id":   input.ModelID,
			"case_type":  input.CaseType,
		})
		return nil, ErrModelNotSellable
	}

	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if line := cart.FindItem(input.ProductID); line != nil {
		line.Quantity += input.Quantity
	} else {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			BrandID:   input.BrandID,
			ModelID:   input.ModelID,
			CaseType:  input.CaseType,
		})
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	logger.Info("Cart item added", map[string]interface{}{
		"session_id": sessionID,
		"product_id": input.ProductID,
		"quantity":   input.Quantity,
	})
	return s.buildDetail(cart)
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, productID uint, quantity int) (*CartDetail, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	line := cart.FindItem(productID)
	if line == nil {
		return nil, ErrCartItemNotFound
	}

	if quantity <= 0 {
		cart.Items = removeLine(cart.Items, productID)
	} else {
		line.Quantity = quantity
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildDetail(cart)
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, productID uint) (*CartDetail, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if cart.FindItem(productID) == nil {
		return nil, ErrCartItemNotFound
	}
	cart.Items = removeLine(cart.Items, productID)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
	})
	return s.buildDetail(cart)
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}
	return s.cartRepo.Delete(ctx, sessionID)
}

// buildDetail resolves each line through the view engine so titles, images
// and prices follow the same precedence the product page uses. Lines whose
// product has since been deleted are dropped from the detail.
func (s *cartService) buildDetail(cart *model.Cart) (*CartDetail, error) {
	detail := &CartDetail{
		SessionID: cart.SessionID,
		Lines:     make([]CartLine, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		view, err := s.views.ResolveView(item.ProductID, item.CaseType)
		if errors.Is(err, ErrProductNotFound) {
			logger.Warn("Dropping cart line for deleted product", map[string]interface{}{
				"session_id": cart.SessionID,
				"product_id": item.ProductID,
			})
			continue
		}
		if err != nil {
			return nil, err
		}

		image := ""
		if len(view.Gallery) > 0 {
			image = view.Gallery[0]
		}

		line := CartLine{
			CartItem:  item,
			Title:     view.Title,
			Image:     image,
			UnitPrice: view.Price,
			LineTotal: view.Price * float64(item.Quantity),
		}
		detail.Lines = append(detail.Lines, line)
		detail.ItemCount += item.Quantity
		detail.Total += line.LineTotal
	}
	return detail, nil
}

func removeLine(items []model.CartItem, productID uint) []model.CartItem {
	kept := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	return kept
}
