package handlers

import (
	"net/http"

	"github.com/geocoder89/eventmanager/internal/apperr"
	"github.com/geocoder89/eventmanager/internal/domain/ticket"
)

const internalMessage = "An internal server error occurred."

func statusFor(kind apperr.Kind) (int, string) {
	switch kind {
	case apperr.NotFound:
		return http.StatusNotFound, "Resource Not Found"
	case apperr.InvalidReference:
		return http.StatusBadRequest, "Invalid Reference"
	case apperr.Duplicate:
		return http.StatusConflict, "Duplicate Entry"
	case apperr.ConstraintViolation:
		return http.StatusUnprocessableEntity, "Constraint Violation"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

type messageKey struct {
	entity apperr.Entity
	kind   apperr.Kind
}

var messages = map[messageKey]string{
	{apperr.Event, apperr.NotFound}:            "The requested event was not found.",
	{apperr.Event, apperr.InvalidReference}:    "A provided reference, such as an owner ID, is invalid.",
	{apperr.Event, apperr.Duplicate}:           "An event with this name already exists.",
	{apperr.Event, apperr.ConstraintViolation}: "A provided event value violates a data constraint.",

	{apperr.Packet, apperr.NotFound}:            "The requested event packet was not found.",
	{apperr.Packet, apperr.InvalidReference}:    "A provided event ID is invalid.",
	{apperr.Packet, apperr.Duplicate}:           "An event packet with this name already exists.",
	{apperr.Packet, apperr.ConstraintViolation}: "A provided event packet value violates a data constraint.",

	{apperr.Ticket, apperr.NotFound}:            "The requested ticket was not found.",
	{apperr.Ticket, apperr.InvalidReference}:    "Invalid packet or event ID provided.",
	{apperr.Ticket, apperr.Duplicate}:           "A ticket with this code already exists.",
	{apperr.Ticket, apperr.ConstraintViolation}: ticket.ExclusiveRefMessage,

	{apperr.Relation, apperr.NotFound}:            "The requested event packet relation was not found.",
	{apperr.Relation, apperr.InvalidReference}:    "Invalid packet or event ID provided.",
	{apperr.Relation, apperr.Duplicate}:           "This event is already in this packet.",
	{apperr.Relation, apperr.ConstraintViolation}: "A provided seat count violates a data constraint.",
}

func messageFor(entity apperr.Entity, kind apperr.Kind) string {
	if msg, ok := messages[messageKey{entity, kind}]; ok {
		return msg
	}
	return internalMessage
}
