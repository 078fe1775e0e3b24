package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsFinalized is the cause attached to mutations rejected on a terminal order.
	ErrOrderIsFinalized = errors.New("order is settled or cancelled")
)

const referencePrefix = "PROJ"

// Order is the aggregate root of the order desk. It owns its work logs and commission
// snapshots and moves through the lifecycle described in the package documentation.
//
// Order follows these invariants:
//   - Must have a creator
//   - Status changes only through Apply and the transition table
//   - Reaching Settled or Cancelled locks the order
//   - Once terminal, only audit fields (timestamps) may change
//   - Work logs are written by the assigned developer while unlocked
type Order struct {
	// id is assigned by storage; zero until the order is first persisted
	id kernel.ID

	status   Status
	isLocked bool

	creatorID   kernel.ID
	developerID *kernel.ID

	specialCommission CommissionOverride
	finalPrice        *kernel.Money
	initialBudget     *kernel.Money

	customerInfo string
	requirements string

	createdAt time.Time
	updatedAt time.Time
	shippedAt *time.Time

	workLogs    []WorkLog
	commissions []Commission

	isConstructed bool
}

// NewOrder creates an unpersisted order in PendingAssignment.
//
// Parameters:
//   - creatorID: the customer-service user who records the order
//   - customerInfo: free-form customer contact, required
//   - requirements: what the customer asked for, may be empty
//   - initialBudget: the customer's budget, nil when unknown
//   - createdAt: creation instant, also used as the first updatedAt
func NewOrder(
	creatorID kernel.ID,
	customerInfo, requirements string,
	initialBudget *kernel.Money,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        PendingAssignment,
		requirements:  requirements,
		createdAt:     createdAt,
		updatedAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCreator(creatorID),
		o.setCustomerInfo(customerInfo),
		o.setInitialBudget(initialBudget),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the full persisted state of an order, used by repositories to
// rebuild the aggregate.
type Snapshot struct {
	ID                kernel.ID
	Status            Status
	IsLocked          bool
	CreatorID         kernel.ID
	DeveloperID       *kernel.ID
	SpecialCommission CommissionOverride
	FinalPrice        *kernel.Money
	InitialBudget     *kernel.Money
	CustomerInfo      string
	Requirements      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ShippedAt         *time.Time
	WorkLogs          []WorkLog
	Commissions       []Commission
}

// RestoreOrder rebuilds a persisted order without replaying its history.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		status:            s.Status,
		isLocked:          s.IsLocked,
		specialCommission: s.SpecialCommission,
		customerInfo:      s.CustomerInfo,
		requirements:      s.Requirements,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
		workLogs:          slices.Clone(s.WorkLogs),
		commissions:       slices.Clone(s.Commissions),
		isConstructed:     true,
	}
	if s.ShippedAt != nil {
		shippedAt := *s.ShippedAt
		o.shippedAt = &shippedAt
	}

	var developerErr error
	if s.DeveloperID != nil {
		developerErr = o.setDeveloper(*s.DeveloperID)
	}

	if err := errors.Join(
		s.ID.Validate(),
		s.Status.Validate(),
		o.setCreator(s.CreatorID),
		developerErr,
		o.setFinalPrice(s.FinalPrice),
		o.setInitialBudget(s.InitialBudget),
	); err != nil {
		return nil, err
	}
	o.id = s.ID

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// Identify records the identity storage assigned to a new order. It fails once the
// order already has one.
func (o *Order) Identify(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !o.id.IsZero() && !o.id.IsEqual(id) {
		return errs.NewValueIsInvalidError("order is already identified as " + o.id.String())
	}
	o.id = id
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && !o.id.IsZero() && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.ID {
	return o.id
}

// Reference is the human-facing order number, e.g. PROJ-20240301-0042. It is empty
// until the order has an identity.
func (o *Order) Reference() string {
	return FormatReference(o.id, o.createdAt)
}

// FormatReference builds the order number for read models that do not load the
// aggregate. The id is zero-padded to four digits and never truncated, so references
// are unique whenever ids are.
func FormatReference(id kernel.ID, createdAt time.Time) string {
	if id.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s-%s-%04d", referencePrefix, createdAt.Format("20060102"), id.Int64())
}

func (o *Order) Status() Status {
	return o.status
}

// IsLocked reports whether customer-service actions and work logs are frozen.
func (o *Order) IsLocked() bool {
	return o.isLocked
}

func (o *Order) CreatorID() kernel.ID {
	return o.creatorID
}

// DeveloperID returns the assigned developer, if any.
func (o *Order) DeveloperID() (kernel.ID, bool) {
	if o.developerID == nil {
		return kernel.ID{}, false
	}
	return *o.developerID, true
}

// IsAssignedTo reports whether developerID is the assigned developer.
func (o *Order) IsAssignedTo(developerID kernel.ID) bool {
	return o.developerID != nil && o.developerID.IsEqual(developerID)
}

func (o *Order) SpecialCommission() CommissionOverride {
	return o.specialCommission
}

// FinalPrice returns the agreed price, if one has been set.
func (o *Order) FinalPrice() (kernel.Money, bool) {
	if o.finalPrice == nil {
		return kernel.Money{}, false
	}
	return *o.finalPrice, true
}

// InitialBudget returns the budget recorded at creation, if any.
func (o *Order) InitialBudget() (kernel.Money, bool) {
	if o.initialBudget == nil {
		return kernel.Money{}, false
	}
	return *o.initialBudget, true
}

func (o *Order) CustomerInfo() string {
	return o.customerInfo
}

func (o *Order) Requirements() string {
	return o.requirements
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ShippedAt is set while the order is Shipped or later, and cleared by RevertToDev.
func (o *Order) ShippedAt() (time.Time, bool) {
	if o.shippedAt == nil {
		return time.Time{}, false
	}
	return *o.shippedAt, true
}

// WorkLogs returns the work logs in insertion order.
func (o *Order) WorkLogs() []WorkLog {
	return slices.Clone(o.workLogs)
}

func (o *Order) Commissions() []Commission {
	return slices.Clone(o.commissions)
}

// Apply moves the order through the lifecycle and performs the side effects attached
// to the transition.
//
// Side effects:
//   - Ship stamps shippedAt with at
//   - RevertToDev clears shippedAt
//   - Settle and Cancel lock the order
//
// On error the order is left exactly as it was. Permission checks are not done here.
func (o *Order) Apply(action Action, at time.Time) error {
	next, err := o.status.Apply(action)
	if err != nil {
		return err
	}

	switch action {
	case Ship:
		shippedAt := at
		o.shippedAt = &shippedAt
	case RevertToDev:
		o.shippedAt = nil
	}

	o.status = next
	if next.IsTerminal() {
		o.isLocked = true
	}
	o.updatedAt = at
	return nil
}

// AssignDeveloper sets the developer working on the order. Role checks on the user
// are the caller's concern.
func (o *Order) AssignDeveloper(developerID kernel.ID, at time.Time) error {
	if err := o.ensureMutable("ASSIGN_DEVELOPER"); err != nil {
		return err
	}
	if err := o.setDeveloper(developerID); err != nil {
		return err
	}
	o.updatedAt = at
	return nil
}

// UnassignDeveloper removes the developer. It is a no-op when none is assigned.
func (o *Order) UnassignDeveloper(at time.Time) error {
	if err := o.ensureMutable("UNASSIGN_DEVELOPER"); err != nil {
		return err
	}
	if o.developerID == nil {
		return nil
	}
	o.developerID = nil
	o.updatedAt = at
	return nil
}

// SetFinalPrice records the agreed price used for commissions.
func (o *Order) SetFinalPrice(price kernel.Money, at time.Time) error {
	if err := o.ensureMutable("SET_FINAL_PRICE"); err != nil {
		return err
	}
	if err := o.setFinalPrice(&price); err != nil {
		return err
	}
	o.updatedAt = at
	return nil
}

// SetSpecialCommission merges update into the current override. Rates absent from
// update keep their previous value.
func (o *Order) SetSpecialCommission(update CommissionOverride, at time.Time) error {
	if err := o.ensureMutable("SET_SPECIAL_COMMISSION"); err != nil {
		return err
	}
	if rate, ok := update.CSRate(); ok {
		if err := rate.Validate(); err != nil {
			return err
		}
	}
	if rate, ok := update.TechRate(); ok {
		if err := rate.Validate(); err != nil {
			return err
		}
	}
	o.specialCommission = o.specialCommission.Merge(update)
	o.updatedAt = at
	return nil
}

// AddWorkLog appends a progress note by authorID, who must be the assigned developer.
// Locked orders accept no new work logs.
func (o *Order) AddWorkLog(authorID kernel.ID, content string, at time.Time) (WorkLog, error) {
	if o.isLocked {
		return WorkLog{}, errs.NewIllegalTransitionErrorWithCause(o.status.String(), "ADD_WORK_LOG", ErrOrderIsFinalized)
	}
	if !o.IsAssignedTo(authorID) {
		return WorkLog{}, errs.NewValueIsInvalidError("author is not the assigned developer")
	}
	log, err := newWorkLog(authorID, content, at)
	if err != nil {
		return WorkLog{}, err
	}
	o.workLogs = append(o.workLogs, log)
	o.updatedAt = at
	return log, nil
}

// ReplaceCommissions swaps the commission snapshot for commissions. It is only legal
// while the order is Verified, which is where the snapshot is taken.
func (o *Order) ReplaceCommissions(commissions []Commission, at time.Time) error {
	if o.status != Verified {
		return errs.NewIllegalTransitionError(o.status.String(), "RECORD_COMMISSIONS")
	}
	for _, c := range commissions {
		if err := c.userID.Validate(); err != nil {
			return err
		}
	}
	o.commissions = slices.Clone(commissions)
	o.updatedAt = at
	return nil
}

func (o *Order) ensureMutable(operation string) error {
	if o.status.IsTerminal() {
		return errs.NewIllegalTransitionErrorWithCause(o.status.String(), operation, ErrOrderIsFinalized)
	}
	return nil
}

func (o *Order) setCreator(creatorID kernel.ID) error {
	if err := creatorID.Validate(); err != nil {
		return err
	}
	o.creatorID = creatorID
	return nil
}

func (o *Order) setDeveloper(developerID kernel.ID) error {
	if err := developerID.Validate(); err != nil {
		return err
	}
	o.developerID = &developerID
	return nil
}

func (o *Order) setCustomerInfo(customerInfo string) error {
	customerInfo = strings.TrimSpace(customerInfo)
	if customerInfo == "" {
		return errs.NewValueIsRequiredError("customerInfo")
	}
	o.customerInfo = customerInfo
	return nil
}

func (o *Order) setFinalPrice(price *kernel.Money) error {
	if price == nil {
		o.finalPrice = nil
		return nil
	}
	if err := price.Validate(); err != nil {
		return err
	}
	p := *price
	o.finalPrice = &p
	return nil
}

func (o *Order) setInitialBudget(budget *kernel.Money) error {
	if budget == nil {
		o.initialBudget = nil
		return nil
	}
	if err := budget.Validate(); err != nil {
		return err
	}
	b := *budget
	o.initialBudget = &b
	return nil
}
