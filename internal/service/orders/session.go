package orders

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cardslip/internal/domain/models"
	"cardslip/internal/pricing"
)

// Number label substituted when a manual line is entered without one.
const manualNumberPlaceholder = "手動追加"

// Session is one delivery slip in progress: the committed order lines,
// the candidate cards from the latest search, and the pending quantities
// the user has dialed in but not yet committed. Insertion order of lines
// is the display and print order.
type Session struct {
	ID string

	mu            sync.Mutex
	lines         []models.OrderLine
	resultVersion string
	results       []models.Card
	pending       map[int]int
	lastUsed      time.Time
}

func newSession(id string) *Session {
	return &Session{
		ID:       id,
		pending:  make(map[int]int),
		lastUsed: time.Now(),
	}
}

// SetResults installs a fresh search result set and drops every pending
// quantity from the previous one. The returned version must accompany
// later selection calls; indices from an older result set can never
// reach the new rows.
func (s *Session) SetResults(cards []models.Card) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.resultVersion = uuid.NewString()
	s.results = cards
	s.pending = make(map[int]int)
	return s.resultVersion
}

// SetPending records the quantity dialed for one displayed card.
// Zero is valid; it undoes a previous selection.
func (s *Session) SetPending(version string, position, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if err := s.checkSelection(version, position); err != nil {
		return err
	}
	if quantity < 0 {
		return models.NewValidationError("quantity must not be negative")
	}

	s.pending[position] = quantity
	return nil
}

// Commit turns the pending quantity for one displayed card into an
// order line and zeroes the pending quantity. Committing the same card
// again appends another line; equivalent lines are never merged.
func (s *Session) Commit(version string, position int) (models.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if err := s.checkSelection(version, position); err != nil {
		return models.OrderLine{}, err
	}

	qty := s.pending[position]
	if qty < 1 {
		return models.OrderLine{}, models.NewValidationError("no quantity selected for this card")
	}

	line := models.NewLineFromCard(s.results[position], qty, time.Now())
	s.lines = append(s.lines, line)
	s.pending[position] = 0
	return line, nil
}

// AppendManual adds a hand-entered line. Name, a positive price and a
// positive quantity are required; an empty number gets the manual-entry
// placeholder. Validation failures leave the slip untouched.
func (s *Session) AppendManual(name, number, rarity string, price, quantity int) (models.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	name = strings.TrimSpace(name)
	number = strings.TrimSpace(number)
	rarity = strings.TrimSpace(rarity)

	switch {
	case name == "":
		return models.OrderLine{}, models.NewValidationError("item name is required")
	case price <= 0:
		return models.OrderLine{}, models.NewValidationError("price must be positive")
	case quantity <= 0:
		return models.OrderLine{}, models.NewValidationError("quantity must be positive")
	}

	if number == "" {
		number = manualNumberPlaceholder
	}

	line := models.OrderLine{
		Card: models.Card{
			Number: number,
			Name:   name,
			Rarity: rarity,
			Price:  strconv.Itoa(price),
		},
		Quantity: quantity,
		AddedAt:  time.Now(),
		IsManual: true,
	}
	s.lines = append(s.lines, line)
	return line, nil
}

// EditPrice replaces the stored price of one line. Zero is allowed; it
// simply zeroes the subtotal. No history of prior prices is kept.
func (s *Session) EditPrice(index, price int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if price < 0 {
		return models.NewValidationError("price must not be negative")
	}
	if index < 0 || index >= len(s.lines) {
		return models.ErrLineNotFound
	}

	s.lines[index].Price = strconv.Itoa(price)
	return nil
}

// RemoveLine deletes the line at index; later lines shift down one
// position, so callers must re-read indices after every removal.
func (s *Session) RemoveLine(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if index < 0 || index >= len(s.lines) {
		return models.ErrLineNotFound
	}

	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	return nil
}

// Clear drops every line. Clearing an empty slip is a no-op.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.lines = nil
}

// Totals recomputes the slip aggregates from scratch.
func (s *Session) Totals() models.OrderTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	return s.totalsLocked()
}

// View returns the editable projection: every line with its derived unit
// price and subtotal, plus totals.
func (s *Session) View() models.OrderView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	view := models.OrderView{Lines: make([]models.LineView, 0, len(s.lines))}
	for _, line := range s.lines {
		unit := pricing.Amount(line.Price)
		view.Lines = append(view.Lines, models.LineView{
			OrderLine: line,
			UnitPrice: unit,
			Subtotal:  unit * int64(line.Quantity),
		})
	}
	view.Totals = s.totalsLocked()
	return view
}

// PrintSheet builds the fixed print projection with formatted amounts
// and a generation timestamp.
func (s *Session) PrintSheet() models.PrintSheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	sheet := models.PrintSheet{
		GeneratedAt: time.Now(),
		Lines:       make([]models.PrintLine, 0, len(s.lines)),
	}
	for _, line := range s.lines {
		unit := pricing.Amount(line.Price)
		sheet.Lines = append(sheet.Lines, models.PrintLine{
			Name:      line.Name,
			UnitPrice: pricing.FormatYen(unit),
			Quantity:  line.Quantity,
			Subtotal:  pricing.FormatYen(unit * int64(line.Quantity)),
		})
	}

	totals := s.totalsLocked()
	sheet.TotalQuantity = pricing.Format(int64(totals.TotalQuantity))
	sheet.TotalAmount = pricing.FormatYen(totals.TotalAmount)
	return sheet
}

// Len reports the number of committed lines.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// LastUsed reports when the session last served an operation.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) totalsLocked() models.OrderTotals {
	var totals models.OrderTotals
	for _, line := range s.lines {
		totals.TotalQuantity += line.Quantity
		totals.TotalAmount += pricing.Amount(line.Price) * int64(line.Quantity)
	}
	return totals
}

func (s *Session) checkSelection(version string, position int) error {
	if version == "" || version != s.resultVersion {
		return models.NewValidationError("selection refers to a stale result set")
	}
	if position < 0 || position >= len(s.results) {
		return models.NewValidationError("selection position out of range")
	}
	return nil
}

func (s *Session) touch() {
	s.lastUsed = time.Now()
}
