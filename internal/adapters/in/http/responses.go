package http

import (
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/notification"
	"orderdesk/internal/core/domain/model/user"
	"orderdesk/internal/core/domain/services"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type CreateUserRequest struct {
	Username              string  `json:"username"`
	FullName              string  `json:"fullName"`
	Role                  string  `json:"role"`
	Password              string  `json:"password"`
	DefaultCommissionRate *string `json:"defaultCommissionRate"`
}

type UpdateUserRequest struct {
	Username              *string `json:"username"`
	FullName              *string `json:"fullName"`
	Role                  *string `json:"role"`
	Password              *string `json:"password"`
	DefaultCommissionRate *string `json:"defaultCommissionRate"`
	ClearCommissionRate   bool    `json:"clearCommissionRate"`
	IsActive              *bool   `json:"isActive"`
}

// UserAccountResponse is an account as managed by admins. CreatedAt is only known
// when the account was read back from storage.
type UserAccountResponse struct {
	ID                    int64      `json:"id"`
	Username              string     `json:"username"`
	FullName              string     `json:"fullName"`
	Role                  string     `json:"role"`
	DefaultCommissionRate *string    `json:"defaultCommissionRate,omitempty"`
	IsActive              bool       `json:"isActive"`
	CreatedAt             *time.Time `json:"createdAt,omitempty"`
}

type CreateOrderRequest struct {
	CustomerInfo  string  `json:"customerInfo"`
	Requirements  string  `json:"requirements"`
	InitialBudget *string `json:"initialBudget"`
	DeveloperID   *int64  `json:"developerId"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type UpdateOrderDetailsRequest struct {
	FinalPrice        *string `json:"finalPrice"`
	DeveloperID       *int64  `json:"developerId"`
	UnassignDeveloper bool    `json:"unassignDeveloper"`
}

// TransitionRequest names either the action or the target status, not both.
type TransitionRequest struct {
	Action *string `json:"action"`
	Status *string `json:"status"`
}

type TransitionResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type SpecialCommissionRequest struct {
	CSRate   *string `json:"csRate"`
	TechRate *string `json:"techRate"`
}

type WorkLogRequest struct {
	Content string `json:"content"`
}

type OrderSummaryResponse struct {
	ID           int64     `json:"id"`
	Reference    string    `json:"reference"`
	Status       string    `json:"status"`
	IsLocked     bool      `json:"isLocked"`
	CreatorID    int64     `json:"creatorId"`
	DeveloperID  *int64    `json:"developerId,omitempty"`
	FinalPrice   *string   `json:"finalPrice,omitempty"`
	CustomerInfo string    `json:"customerInfo"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type OrderDetailResponse struct {
	OrderSummaryResponse
	Requirements      string               `json:"requirements"`
	InitialBudget     *string              `json:"initialBudget,omitempty"`
	SpecialCSRate     *string              `json:"specialCsRate,omitempty"`
	SpecialTechRate   *string              `json:"specialTechRate,omitempty"`
	ShippedAt         *time.Time           `json:"shippedAt,omitempty"`
	CreatorUsername   string               `json:"creatorUsername"`
	DeveloperUsername string               `json:"developerUsername,omitempty"`
	WorkLogs          []WorkLogResponse    `json:"workLogs"`
	Commissions       []CommissionResponse `json:"commissions"`
	Permissions       map[string]bool      `json:"permissions"`
	AllowedActions    []string             `json:"allowedActions"`
}

type WorkLogResponse struct {
	ID             int64     `json:"id"`
	AuthorID       int64     `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CommissionResponse struct {
	UserID     int64     `json:"userId"`
	Username   string    `json:"username"`
	Amount     string    `json:"amount"`
	RoleAtTime string    `json:"roleAtTime"`
	CreatedAt  time.Time `json:"createdAt"`
}

type NotificationResponse struct {
	ID             int64     `json:"id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"isRead"`
	RelatedOrderID *int64    `json:"relatedOrderId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type StatusDistributionResponse struct {
	Counts            []StatusCountResponse `json:"counts"`
	TotalOrders       int64                 `json:"totalOrders"`
	TotalUsers        int64                 `json:"totalUsers"`
	TotalSettledValue string                `json:"totalSettledValue"`
}

type PersonalStatsResponse struct {
	Role            string `json:"role"`
	MonthlyOrders   int64  `json:"monthlyOrders"`
	TotalCommission string `json:"totalCommission"`
}

func newLoginResponse(r commands.LoginResult) LoginResponse {
	return LoginResponse{
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		User: UserResponse{
			ID:       r.UserID.Int64(),
			Username: r.Username,
			FullName: r.FullName,
			Role:     r.Role.String(),
		},
	}
}

func newUserAccountResponse(u *user.User) UserAccountResponse {
	resp := UserAccountResponse{
		ID:       u.ID().Int64(),
		Username: u.Username(),
		FullName: u.FullName(),
		Role:     u.Role().String(),
		IsActive: u.IsActive(),
	}
	if rate, ok := u.DefaultCommissionRate(); ok {
		v := rate.String()
		resp.DefaultCommissionRate = &v
	}
	return resp
}

func newUserViewResponse(v queries.UserView) UserAccountResponse {
	resp := UserAccountResponse{
		ID:       v.ID.Int64(),
		Username: v.Username,
		FullName: v.FullName,
		Role:     v.Role.String(),
		IsActive: v.IsActive,
	}
	if v.DefaultCommissionRate != nil {
		rate := v.DefaultCommissionRate.String()
		resp.DefaultCommissionRate = &rate
	}
	if !v.CreatedAt.IsZero() {
		createdAt := v.CreatedAt
		resp.CreatedAt = &createdAt
	}
	return resp
}

func newOrderSummaryResponse(o queries.OrderSummary) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:           o.ID.Int64(),
		Reference:    o.Reference,
		Status:       o.Status.String(),
		IsLocked:     o.IsLocked,
		CreatorID:    o.CreatorID.Int64(),
		DeveloperID:  idValue(o.DeveloperID),
		FinalPrice:   moneyString(o.FinalPrice),
		CustomerInfo: o.CustomerInfo,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func newOrderDetailResponse(o queries.GetOrderQueryResponse) OrderDetailResponse {
	workLogs := make([]WorkLogResponse, 0, len(o.WorkLogs))
	for _, w := range o.WorkLogs {
		workLogs = append(workLogs, WorkLogResponse{
			ID:             w.ID.Int64(),
			AuthorID:       w.AuthorID.Int64(),
			AuthorUsername: w.AuthorUsername,
			Content:        w.Content,
			CreatedAt:      w.CreatedAt,
		})
	}

	commissions := make([]CommissionResponse, 0, len(o.Commissions))
	for _, c := range o.Commissions {
		commissions = append(commissions, CommissionResponse{
			UserID:     c.UserID.Int64(),
			Username:   c.Username,
			Amount:     c.Amount.String(),
			RoleAtTime: c.RoleAtTime.String(),
			CreatedAt:  c.CreatedAt,
		})
	}

	allowed := make([]string, 0)
	for _, a := range o.Permissions.Actions() {
		allowed = append(allowed, a.String())
	}

	var specialCS, specialTech *string
	if o.SpecialCSRate != nil {
		v := o.SpecialCSRate.String()
		specialCS = &v
	}
	if o.SpecialTechRate != nil {
		v := o.SpecialTechRate.String()
		specialTech = &v
	}

	return OrderDetailResponse{
		OrderSummaryResponse: newOrderSummaryResponse(o.OrderSummary),
		Requirements:         o.Requirements,
		InitialBudget:        moneyString(o.InitialBudget),
		SpecialCSRate:        specialCS,
		SpecialTechRate:      specialTech,
		ShippedAt:            o.ShippedAt,
		CreatorUsername:      o.CreatorUsername,
		DeveloperUsername:    o.DeveloperUsername,
		WorkLogs:             workLogs,
		Commissions:          commissions,
		Permissions:          permissionFlags(o.Permissions),
		AllowedActions:       allowed,
	}
}

func permissionFlags(p services.PermissionSet) map[string]bool {
	return map[string]bool{
		"canCancel":               p.CanCancel,
		"canRevertToDev":          p.CanRevertToDev,
		"canSettleByTech":         p.CanSettleByTech,
		"canAddWorkLog":           p.CanAddWorkLog,
		"canSetSpecialCommission": p.CanSetSpecialCommission,
		"canRequestPayment":       p.CanRequestPayment,
		"canStartDevelopment":     p.CanStartDevelopment,
		"canShip":                 p.CanShip,
		"canConfirmReceipt":       p.CanConfirmReceipt,
		"canVerify":               p.CanVerify,
		"canSettle":               p.CanSettle,
		"canUpdateDetails":        p.CanUpdateDetails,
	}
}

func newNotificationResponse(v queries.NotificationView) NotificationResponse {
	return NotificationResponse{
		ID:             v.ID.Int64(),
		Content:        v.Content,
		IsRead:         v.IsRead,
		RelatedOrderID: idValue(v.RelatedOrderID),
		CreatedAt:      v.CreatedAt,
	}
}

func notificationToResponse(n *notification.Notification) NotificationResponse {
	var related *int64
	if id, ok := n.RelatedOrderID(); ok {
		v := id.Int64()
		related = &v
	}
	return NotificationResponse{
		ID:             n.ID().Int64(),
		Content:        n.Content(),
		IsRead:         n.IsRead(),
		RelatedOrderID: related,
		CreatedAt:      n.CreatedAt(),
	}
}

func newStatusDistributionResponse(r queries.GetStatusDistributionQueryResponse) StatusDistributionResponse {
	counts := make([]StatusCountResponse, 0, len(r.Counts))
	for _, c := range r.Counts {
		counts = append(counts, StatusCountResponse{Status: c.Status.String(), Count: c.Count})
	}
	return StatusDistributionResponse{
		Counts:            counts,
		TotalOrders:       r.TotalOrders,
		TotalUsers:        r.TotalUsers,
		TotalSettledValue: r.TotalSettledValue.String(),
	}
}

func idValue(id *kernel.ID) *int64 {
	if id == nil {
		return nil
	}
	v := id.Int64()
	return &v
}

func moneyString(m *kernel.Money) *string {
	if m == nil {
		return nil
	}
	v := m.String()
	return &v
}
