package nsq

import (
	"regexp"

	"delivery-service/internal/core/domain/model/delivery"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var topicName = regexp.MustCompile(`^[.a-zA-Z0-9_-]+(#ephemeral)?$`)

type createDeliveryMessage struct {
	OrderID  int64  `json:"order_id"`
	ClientID int64  `json:"client_id"`
	City     string `json:"city"`
	Street   string `json:"street"`
	Zip      string `json:"zip"`
}

func (m createDeliveryMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.OrderID, validation.Required, validation.Min(int64(1))),
		validation.Field(&m.ClientID, validation.Required, validation.Min(int64(1))),
		validation.Field(&m.City, validation.Required, validation.Length(1, 255)),
		validation.Field(&m.Street, validation.Required, validation.Length(1, 255)),
		validation.Field(&m.Zip, validation.Required, validation.Length(1, 32)),
	)
}

type updateStatusMessage struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

func (m updateStatusMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.OrderID, validation.Required, validation.Min(int64(1))),
		validation.Field(&m.Status, validation.Required, validation.In(
			delivery.Pending.String(),
			delivery.Packaged.String(),
			delivery.Delivering.String(),
			delivery.Delivered.String(),
			delivery.Cancelled.String(),
		)),
	)
}

type orderMessage struct {
	OrderID int64 `json:"order_id"`
}

func (m orderMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.OrderID, validation.Required, validation.Min(int64(1))),
	)
}

type cancelDeliveryMessage struct {
	OrderID       int64  `json:"order_id"`
	ResponseTopic string `json:"response_topic,omitempty"`
}

func (m cancelDeliveryMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.OrderID, validation.Required, validation.Min(int64(1))),
		validation.Field(&m.ResponseTopic, validation.Length(1, 64), validation.Match(topicName)),
	)
}

type publicKeyMessage struct {
	PublicKey string `json:"public_key"`
}

func (m publicKeyMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.PublicKey, validation.Required),
	)
}
