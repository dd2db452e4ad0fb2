package statemachine

import (
	"errors"

	"github.com/gledyson007/delivery-comida/models"
)

// Transition defines a valid status change and which role may perform it.
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.Role
}

// validTransitions is the authoritative lifecycle definition. The driver's
// claim is not listed here: claiming sets the driver while the status stays
// out_for_delivery, so it is guarded by the conditional update instead.
var validTransitions = []Transition{
	// Owner moves the order through preparation
	{From: models.StatusPending, To: models.StatusInProgress, Actor: models.RoleOwner},
	{From: models.StatusInProgress, To: models.StatusOutForDelivery, Actor: models.RoleOwner},
	// Owner may cancel before the order leaves the kitchen
	{From: models.StatusPending, To: models.StatusCancelled, Actor: models.RoleOwner},
	{From: models.StatusInProgress, To: models.StatusCancelled, Actor: models.RoleOwner},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.Role
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state.
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks whether the given actor may move an order between
// the two states.
func CanTransition(from, to models.OrderStatus, actor models.Role) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for role '" + string(actor) + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// AllTransitions returns the full state machine for documentation.
func AllTransitions() []Transition {
	return validTransitions
}
