package handlers

import (
	"sync"

	"github.com/geocoder89/eventmanager/internal/domain/ticket"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const exclusiveRefTag = "exclusive_ref"

var bindingOnce sync.Once

// configureBinding rejects unknown JSON fields and installs the ticket
// cross-field rule on gin's validator.
func configureBinding() {
	bindingOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterStructValidation(validateExclusiveRef,
			ticket.CreateTicketRequest{},
			ticket.UpdateTicketRequest{},
		)
	})
}

func validateExclusiveRef(sl validator.StructLevel) {
	ref, ok := sl.Current().Interface().(ticket.Referencer)
	if !ok {
		return
	}

	if !ticket.HasExclusiveRef(ref) {
		packetID, _ := ref.References()
		sl.ReportError(packetID, "id_pachet", "PacketID", exclusiveRefTag, "")
	}
}
