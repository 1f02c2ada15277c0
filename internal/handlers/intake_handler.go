package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/storage"
)

// IntakeHandler covers the public intake endpoints: contact form, newsletter
// signup, donation intent. None of them send email; submissions are stored
// for admin review only.
type IntakeHandler struct {
	contact    storage.ContactStore
	newsletter storage.NewsletterStore
	donations  storage.DonationStore
}

func NewIntakeHandler(contact storage.ContactStore, newsletter storage.NewsletterStore, donations storage.DonationStore) *IntakeHandler {
	return &IntakeHandler{contact: contact, newsletter: newsletter, donations: donations}
}

func validEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

func (h *IntakeHandler) SubmitContact(c *fiber.Ctx) error {
	var in struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	var fields []string
	if in.Name == "" {
		fields = append(fields, "name")
	}
	if in.Email == "" {
		fields = append(fields, "email")
	}
	if in.Message == "" {
		fields = append(fields, "message")
	}
	if len(fields) > 0 {
		return missingFields(c, fields)
	}
	if !validEmail(in.Email) {
		return badRequest(c, "Invalid email address")
	}

	msg := &models.ContactMessage{
		Name:      in.Name,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: time.Now(),
	}
	if err := h.contact.Create(c.Context(), msg); err != nil {
		return storeErr(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

// Subscribe is idempotent: an address that is already subscribed gets a 200
// instead of an error, and a previously unsubscribed one is re-activated.
func (h *IntakeHandler) Subscribe(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if in.Email == "" {
		return missingFields(c, []string{"email"})
	}
	if !validEmail(in.Email) {
		return badRequest(c, "Invalid email address")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := h.newsletter.GetByEmail(c.Context(), email)
	switch {
	case err == nil:
		if !existing.Subscribed {
			if err := h.newsletter.SetSubscribed(c.Context(), existing.ID.Hex(), true); err != nil {
				return storeErr(c, err, "")
			}
		}
		return c.JSON(fiber.Map{"success": true})
	case errors.Is(err, storage.ErrNotFound):
		sub := &models.NewsletterSubscriber{
			Email:        email,
			Subscribed:   true,
			SubscribedAt: time.Now(),
		}
		if err := h.newsletter.Create(c.Context(), sub); err != nil {
			return storeErr(c, err, "")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
	default:
		return storeErr(c, err, "")
	}
}

func (h *IntakeHandler) SubmitDonation(c *fiber.Ctx) error {
	var in struct {
		Name      string  `json:"name"`
		Email     string  `json:"email"`
		AmountUSD float64 `json:"amount_usd"`
		Note      string  `json:"note"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if in.Email == "" {
		return missingFields(c, []string{"email"})
	}
	if !validEmail(in.Email) {
		return badRequest(c, "Invalid email address")
	}
	if in.AmountUSD <= 0 {
		return badRequest(c, "Amount must be greater than zero")
	}

	donation := &models.Donation{
		Reference: uuid.NewString(),
		Name:      in.Name,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		AmountUSD: in.AmountUSD,
		Note:      in.Note,
		CreatedAt: time.Now(),
	}
	if err := h.donations.Create(c.Context(), donation); err != nil {
		return storeErr(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "reference": donation.Reference})
}

// Admin review endpoints.

func (h *IntakeHandler) ListContactMessages(c *fiber.Ctx) error {
	messages, err := h.contact.List(c.Context())
	if err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "messages": messages})
}

func (h *IntakeHandler) MarkContactRead(c *fiber.Ctx) error {
	if err := h.contact.MarkRead(c.Context(), c.Params("id")); err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *IntakeHandler) ListSubscribers(c *fiber.Ctx) error {
	subscribers, err := h.newsletter.List(c.Context())
	if err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "subscribers": subscribers})
}

func (h *IntakeHandler) ListDonations(c *fiber.Ctx) error {
	donations, err := h.donations.List(c.Context())
	if err != nil {
		return storeErr(c, err, "")
	}
	return c.JSON(fiber.Map{"success": true, "donations": donations})
}
