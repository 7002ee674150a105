package services

import (
	"fmt"
	"time"

	"electra/internal/domain"
	applog "electra/internal/log"
	"electra/internal/media"
	"electra/internal/repos"
	"electra/internal/validate"

	"github.com/google/uuid"
)

type OrderService struct {
	Orders *repos.OrderRepo
	Staff  *repos.StaffRepo
	Media  *media.Store
}

func NewOrderService(orders *repos.OrderRepo, staff *repos.StaffRepo, store *media.Store) *OrderService {
	return &OrderService{Orders: orders, Staff: staff, Media: store}
}

type OrderInput struct {
	CustomerName     string             `json:"customerName"`
	CustomerEmail    string             `json:"customerEmail"`
	CustomerPhone    string             `json:"customerPhone"`
	Items            []domain.OrderItem `json:"items"`
	Total            float64            `json:"total"`
	PaymentCondition string             `json:"paymentCondition"`
	Notes            string             `json:"notes"`
	AssignedTo       string             `json:"assignedTo"`
	CreatedBy        string             `json:"createdBy"`
	OrderImage       string             `json:"orderImage"`
}

// Create validates the input, recomputes the total from line items and
// persists the order together with its stock decrements. The returned
// clientTotal lets callers log a mismatch against what the client sent;
// the server-computed value is what gets stored.
func (s *OrderService) Create(in OrderInput) (domain.Order, float64, error) {
	var details []string
	name, ok := validate.Name(in.CustomerName)
	if !ok {
		details = append(details, "customerName is required")
	}
	email, ok := validate.Email(in.CustomerEmail)
	if !ok {
		details = append(details, "customerEmail must be a valid email")
	}
	phone, ok := validate.Phone(in.CustomerPhone)
	if !ok {
		details = append(details, "customerPhone must be a valid phone number")
	}
	if len(in.Items) == 0 {
		details = append(details, "at least one line item is required")
	}
	for i, it := range in.Items {
		if it.ProductID == "" || it.ProductName == "" {
			details = append(details, fmt.Sprintf("items[%d]: productId and productName are required", i))
		}
		if it.Quantity < 1 {
			details = append(details, fmt.Sprintf("items[%d]: quantity must be a positive integer", i))
		}
		if it.Price < 0 {
			details = append(details, fmt.Sprintf("items[%d]: price must not be negative", i))
		}
	}
	cond := in.PaymentCondition
	if cond == "" {
		cond = domain.PayImmediate
	} else if _, ok := validate.PaymentCondition(cond); !ok {
		details = append(details, "paymentCondition must be one of immediate, days15, days30")
	}
	if in.AssignedTo != "" {
		if _, err := s.Staff.Get(in.AssignedTo); err != nil {
			details = append(details, "assignedTo does not reference a known staff member")
		}
	}
	if err := validationErr(details); err != nil {
		return domain.Order{}, 0, err
	}

	total := 0.0
	for _, it := range in.Items {
		total += float64(it.Quantity) * it.Price
	}

	o := domain.Order{
		ID:               uuid.NewString(),
		CustomerName:     name,
		CustomerEmail:    email,
		CustomerPhone:    phone,
		Items:            in.Items,
		Total:            total,
		Status:           domain.StatusPending,
		PaymentCondition: cond,
		AssignedTo:       in.AssignedTo,
		Notes:            in.Notes,
		OrderImage:       in.OrderImage,
		CreatedBy:        in.CreatedBy,
	}
	if err := s.Orders.CreateWithItems(&o); err != nil {
		return domain.Order{}, 0, err
	}
	o.Derive(time.Now())
	return o, in.Total, nil
}

type OrderUpdate struct {
	CustomerName     *string `json:"customerName"`
	CustomerEmail    *string `json:"customerEmail"`
	CustomerPhone    *string `json:"customerPhone"`
	Status           *string `json:"status"`
	PaymentCondition *string `json:"paymentCondition"`
	Notes            *string `json:"notes"`
	AssignedTo       *string `json:"assignedTo"`
	OrderImage       *string `json:"orderImage"`
}

// Update applies a partial update. Any target status is accepted, backward
// moves included; when the target is dispatched the dispatch date is stamped
// as part of the same update.
func (s *OrderService) Update(id string, in OrderUpdate) (domain.Order, error) {
	o, err := s.Orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}

	var details []string
	if in.CustomerName != nil {
		if v, ok := validate.Name(*in.CustomerName); ok {
			o.CustomerName = v
		} else {
			details = append(details, "customerName is required")
		}
	}
	if in.CustomerEmail != nil {
		if v, ok := validate.Email(*in.CustomerEmail); ok {
			o.CustomerEmail = v
		} else {
			details = append(details, "customerEmail must be a valid email")
		}
	}
	if in.CustomerPhone != nil {
		if v, ok := validate.Phone(*in.CustomerPhone); ok {
			o.CustomerPhone = v
		} else {
			details = append(details, "customerPhone must be a valid phone number")
		}
	}
	if in.Status != nil {
		v, ok := validate.OrderStatus(*in.Status)
		if !ok {
			details = append(details, "status must be one of pending, dc, invoice, dispatched")
		} else {
			o.Status = v
			if v == domain.StatusDispatched {
				o.DispatchDate = time.Now().UTC().Format(time.RFC3339)
			}
		}
	}
	if in.PaymentCondition != nil {
		if v, ok := validate.PaymentCondition(*in.PaymentCondition); ok {
			o.PaymentCondition = v
		} else {
			details = append(details, "paymentCondition must be one of immediate, days15, days30")
		}
	}
	if in.Notes != nil {
		o.Notes = *in.Notes
	}
	if in.AssignedTo != nil {
		if *in.AssignedTo != "" {
			if _, err := s.Staff.Get(*in.AssignedTo); err != nil {
				details = append(details, "assignedTo does not reference a known staff member")
			}
		}
		o.AssignedTo = *in.AssignedTo
	}
	if in.OrderImage != nil {
		o.OrderImage = *in.OrderImage
	}
	if err := validationErr(details); err != nil {
		return domain.Order{}, err
	}

	if err := s.Orders.Update(o); err != nil {
		return domain.Order{}, err
	}
	return s.get(id)
}

func (s *OrderService) MarkPaid(id string) (domain.Order, error) {
	if _, err := s.Orders.MarkPaid(id); err != nil {
		return domain.Order{}, err
	}
	return s.get(id)
}

// Delete removes the order and fires off deletion of any attached image.
// Image cleanup is best-effort: a failure is logged and does not block the
// record deletion.
func (s *OrderService) Delete(id string) error {
	o, err := s.Orders.Get(id)
	if err != nil {
		return err
	}
	if o.OrderImage != "" {
		if err := s.Media.Delete(o.OrderImage); err != nil {
			applog.Error(nil, "order.image.delete", err, map[string]any{"order_id": id, "image": o.OrderImage})
		}
	}
	return s.Orders.Delete(id)
}

func (s *OrderService) Get(id string) (domain.Order, error) {
	return s.get(id)
}

func (s *OrderService) List() ([]domain.Order, error) {
	return s.derived(s.Orders.ListAll())
}

func (s *OrderService) ListByStatus(status string) ([]domain.Order, error) {
	return s.derived(s.Orders.ListByStatus(status))
}

// ListForActor returns the order queue visible to the acting staff member:
// admins see everything, staff see their assigned orders plus unassigned ones.
func (s *OrderService) ListForActor(staffID, role string) ([]domain.Order, error) {
	if role == domain.RoleAdmin {
		return s.derived(s.Orders.ListAll())
	}
	return s.derived(s.Orders.ListForStaff(staffID))
}

func (s *OrderService) get(id string) (domain.Order, error) {
	o, err := s.Orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}
	o.Derive(time.Now())
	return o, nil
}

func (s *OrderService) derived(orders []domain.Order, err error) ([]domain.Order, error) {
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range orders {
		orders[i].Derive(now)
	}
	return orders, nil
}
