package domain

import "time"

// DefaultCurrency is applied when a shipment is created without one.
const DefaultCurrency = "USD"

// Party is a sender or receiver.
type Party struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
}

// Place is a city/country pair used for origin and destination.
type Place struct {
	City    string `json:"city" bson:"city"`
	Country string `json:"country" bson:"country"`
}

// Shipment is the core aggregate root. It is identified externally by TrackingCode.
type Shipment struct {
	ID                 string         `json:"id" bson:"_id,omitempty"`
	TrackingCode       string         `json:"tracking_code" bson:"tracking_code"`
	Sender             Party          `json:"sender" bson:"sender"`
	Receiver           Party          `json:"receiver" bson:"receiver"`
	Origin             Place          `json:"origin" bson:"origin"`
	Destination        Place          `json:"destination" bson:"destination"`
	PackageDescription string         `json:"package_description" bson:"package_description"`
	PackageWeightKg    *float64       `json:"package_weight_kg,omitempty" bson:"package_weight_kg,omitempty"`
	Status             ShipmentStatus `json:"status" bson:"status"`
	CurrentLocation    string         `json:"current_location" bson:"current_location"`
	EstimatedDelivery  *time.Time     `json:"estimated_delivery,omitempty" bson:"estimated_delivery,omitempty"`
	HeldByCustoms      bool           `json:"held_by_customs" bson:"held_by_customs"`
	Notes              string         `json:"notes" bson:"notes"`
	Currency           string         `json:"currency" bson:"currency"`
	PackageValue       *float64       `json:"package_value,omitempty" bson:"package_value,omitempty"`
	ShippingFee        *float64       `json:"shipping_fee,omitempty" bson:"shipping_fee,omitempty"`
	DeliveryDays       *int           `json:"delivery_days,omitempty" bson:"delivery_days,omitempty"`
	CreatedAt          time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at" bson:"updated_at"`
}

// Progress renders the shipment's position in the stage sequence.
func (s *Shipment) Progress() Progress {
	return TrackProgress(string(s.Status), s.HeldByCustoms)
}

// TimelineEvent is one append-only history entry of a shipment.
type TimelineEvent struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	ShipmentID  string         `json:"shipment_id" bson:"shipment_id"`
	Status      ShipmentStatus `json:"status" bson:"status"`
	Location    string         `json:"location" bson:"location"`
	Description string         `json:"description" bson:"description"`
	Timestamp   time.Time      `json:"timestamp" bson:"timestamp"`
}
