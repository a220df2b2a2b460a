package crm

import (
	"regexp"
	"strings"
	"time"

	"github.com/judn/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerStatus is the customer's lifecycle stage
type CustomerStatus string

const (
	StatusLead     CustomerStatus = "lead"
	StatusCustomer CustomerStatus = "customer"
	StatusInactive CustomerStatus = "inactive"
	StatusBlocked  CustomerStatus = "blocked"
)

// IsValid checks if the status is one of the known statuses
func (s CustomerStatus) IsValid() bool {
	switch s {
	case StatusLead, StatusCustomer, StatusInactive, StatusBlocked:
		return true
	}
	return false
}

func (s CustomerStatus) String() string {
	return string(s)
}

// Platform is where the customer was acquired
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformWebsite   Platform = "website"
	PlatformReferral  Platform = "referral"
	PlatformOther     Platform = "other"
)

// IsValid checks if the platform is one of the known platforms
func (p Platform) IsValid() bool {
	switch p {
	case PlatformFacebook, PlatformInstagram, PlatformWhatsApp, PlatformWebsite, PlatformReferral, PlatformOther:
		return true
	}
	return false
}

// Interest is a product category the customer has shown interest in
type Interest string

const (
	InterestShirts      Interest = "shirts"
	InterestPants       Interest = "pants"
	InterestDresses     Interest = "dresses"
	InterestAccessories Interest = "accessories"
	InterestShoes       Interest = "shoes"
	InterestBags        Interest = "bags"
	InterestGeneral     Interest = "general"
)

// IsValid checks if the interest is one of the known interests
func (i Interest) IsValid() bool {
	switch i {
	case InterestShirts, InterestPants, InterestDresses, InterestAccessories, InterestShoes, InterestBags, InterestGeneral:
		return true
	}
	return false
}

// phonePattern accepts Bangladeshi mobile numbers with an optional
// country code prefix
var phonePattern = regexp.MustCompile(`^(\+880|880|0)?1[3456789]\d{8}$`)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ContactType is how a customer interaction happened
type ContactType string

const (
	ContactCall     ContactType = "call"
	ContactMessage  ContactType = "message"
	ContactEmail    ContactType = "email"
	ContactWhatsApp ContactType = "whatsapp"
)

// Contact is one entry in a customer's communication history
type Contact struct {
	Date    time.Time   `json:"date"`
	Type    ContactType `json:"type"`
	Notes   string      `json:"notes"`
	Outcome string      `json:"outcome"` // positive, neutral, negative
}

// Customer is the aggregate root for CRM contacts. The phone number is
// the natural key: checkout upserts by phone.
type Customer struct {
	shared.AuditedAggregateRoot
	Name             string
	Phone            string
	Email            string
	Interest         Interest
	Platform         Platform
	Status           CustomerStatus
	Notes            string
	Tags             []string
	TotalOrders      int
	TotalSpent       decimal.Decimal
	LastOrderDate    *time.Time
	FollowUpRequired bool
	FollowUpDate     *time.Time
	FollowUpNotes    string
	History          []Contact
}

// NewCustomer creates a new lead
func NewCustomer(name, phone string, platform Platform) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}
	if !platform.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unknown acquisition platform")
	}

	customer := &Customer{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 strings.TrimSpace(name),
		Phone:                NormalizePhone(phone),
		Interest:             InterestGeneral,
		Platform:             platform,
		Status:               StatusLead,
		TotalSpent:           decimal.Zero,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's profile fields
func (c *Customer) Update(name, email string, interest Interest, notes string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if email != "" && !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	if !interest.IsValid() {
		return shared.NewDomainError("INVALID_INTEREST", "Unknown interest")
	}
	if len(notes) > 1000 {
		return shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 1000 characters")
	}

	c.Name = strings.TrimSpace(name)
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Interest = interest
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetStatus moves the customer to a new lifecycle stage
func (c *Customer) SetStatus(status CustomerStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown customer status")
	}

	old := c.Status
	c.Status = status
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	if old != status {
		c.AddDomainEvent(NewCustomerStatusChangedEvent(c, old))
	}

	return nil
}

// SetTags replaces the customer's tags
func (c *Customer) SetTags(tags []string) {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	c.Tags = cleaned
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// RecordOrder bumps the order counters after a successful checkout.
// A lead that places an order becomes a customer.
func (c *Customer) RecordOrder(total decimal.Decimal, at time.Time) {
	c.TotalOrders++
	c.TotalSpent = c.TotalSpent.Add(total)
	c.LastOrderDate = &at
	if c.Status == StatusLead {
		c.Status = StatusCustomer
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// ScheduleFollowUp flags the customer for follow-up on the given date
func (c *Customer) ScheduleFollowUp(date time.Time, notes string) {
	c.FollowUpRequired = true
	c.FollowUpDate = &date
	c.FollowUpNotes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// ClearFollowUp clears the follow-up flag
func (c *Customer) ClearFollowUp() {
	c.FollowUpRequired = false
	c.FollowUpDate = nil
	c.FollowUpNotes = ""
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// AddContact appends an entry to the communication history
func (c *Customer) AddContact(contactType ContactType, notes, outcome string) error {
	switch contactType {
	case ContactCall, ContactMessage, ContactEmail, ContactWhatsApp:
	default:
		return shared.NewDomainError("INVALID_CONTACT_TYPE", "Unknown contact type")
	}

	c.History = append(c.History, Contact{
		Date:    time.Now(),
		Type:    contactType,
		Notes:   notes,
		Outcome: outcome,
	})
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Value returns the average order value, zero when no orders exist
func (c *Customer) Value() decimal.Decimal {
	if c.TotalOrders == 0 {
		return decimal.Zero
	}
	return c.TotalSpent.Div(decimal.NewFromInt(int64(c.TotalOrders)))
}

// DaysSinceLastOrder returns the days since the last order, zero when
// the customer never ordered
func (c *Customer) DaysSinceLastOrder() int {
	if c.LastOrderDate == nil {
		return 0
	}
	return int(time.Since(*c.LastOrderDate).Hours() / 24)
}

// IsBlocked returns true when the customer is blocked
func (c *Customer) IsBlocked() bool {
	return c.Status == StatusBlocked
}

// NormalizePhone strips spaces and hyphens from a phone number
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phone
}

// ValidatePhone checks that the phone looks like a reachable mobile number
func ValidatePhone(phone string) error {
	normalized := NormalizePhone(phone)
	if len(normalized) < 10 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must have at least 10 digits")
	}
	if !phonePattern.MatchString(normalized) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number")
	}
	return nil
}

func validateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 50 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 50 characters")
	}
	return nil
}
