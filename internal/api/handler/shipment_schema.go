package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type partyRequest struct {
	Name    string `json:"name"    validate:"required"`
	Address string `json:"address"`
}

type placeRequest struct {
	City    string `json:"city"    validate:"required"`
	Country string `json:"country" validate:"required"`
}

type createShipmentRequest struct {
	TrackingCode       string       `json:"tracking_code"       validate:"omitempty,max=32"`
	Sender             partyRequest `json:"sender"              validate:"required"`
	Receiver           partyRequest `json:"receiver"            validate:"required"`
	Origin             placeRequest `json:"origin"              validate:"required"`
	Destination        placeRequest `json:"destination"         validate:"required"`
	PackageDescription string       `json:"package_description"`
	PackageWeightKg    *float64     `json:"package_weight_kg"   validate:"omitempty,gt=0"`
	Status             string       `json:"status"              validate:"omitempty,shipment_status"`
	CurrentLocation    string       `json:"current_location"`
	EstimatedDelivery  *time.Time   `json:"estimated_delivery"`
	HeldByCustoms      bool         `json:"held_by_customs"`
	Notes              string       `json:"notes"`
	Currency           string       `json:"currency"            validate:"omitempty,iso4217"`
	PackageValue       *float64     `json:"package_value"       validate:"omitempty,gte=0"`
	ShippingFee        *float64     `json:"shipping_fee"        validate:"omitempty,gte=0"`
	DeliveryDays       *int         `json:"delivery_days"       validate:"omitempty,gte=0"`
}

// updateShipmentRequest is a partial update: absent fields are left unchanged.
type updateShipmentRequest struct {
	Sender             *partyRequest `json:"sender"`
	Receiver           *partyRequest `json:"receiver"`
	Origin             *placeRequest `json:"origin"`
	Destination        *placeRequest `json:"destination"`
	PackageDescription *string       `json:"package_description"`
	PackageWeightKg    *float64      `json:"package_weight_kg"  validate:"omitempty,gt=0"`
	Status             *string       `json:"status"             validate:"omitempty,shipment_status"`
	CurrentLocation    *string       `json:"current_location"`
	EstimatedDelivery  *time.Time    `json:"estimated_delivery"`
	HeldByCustoms      *bool         `json:"held_by_customs"`
	Notes              *string       `json:"notes"`
	Currency           *string       `json:"currency"           validate:"omitempty,iso4217"`
	PackageValue       *float64      `json:"package_value"      validate:"omitempty,gte=0"`
	ShippingFee        *float64      `json:"shipping_fee"       validate:"omitempty,gte=0"`
	DeliveryDays       *int          `json:"delivery_days"      validate:"omitempty,gte=0"`

	// Describe the timeline entry recorded when status changes.
	EventLocation    string `json:"event_location"`
	EventDescription string `json:"event_description"`
}

type appendTimelineRequest struct {
	Status      string `json:"status"      validate:"required,shipment_status"`
	Location    string `json:"location"`
	Description string `json:"description" validate:"required"`
}

// --- Response types ---

type partyResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type placeResponse struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type shipmentLinks struct {
	Self     string `json:"self"`
	Timeline string `json:"timeline"`
	Tracking string `json:"tracking"`
}

type shipmentResponse struct {
	ID                 string        `json:"id"`
	TrackingCode       string        `json:"tracking_code"`
	Sender             partyResponse `json:"sender"`
	Receiver           partyResponse `json:"receiver"`
	Origin             placeResponse `json:"origin"`
	Destination        placeResponse `json:"destination"`
	PackageDescription string        `json:"package_description"`
	PackageWeightKg    *float64      `json:"package_weight_kg,omitempty"`
	Status             string        `json:"status"`
	StatusLabel        string        `json:"status_label"`
	CurrentLocation    string        `json:"current_location"`
	EstimatedDelivery  *time.Time    `json:"estimated_delivery,omitempty"`
	HeldByCustoms      bool          `json:"held_by_customs"`
	Notes              string        `json:"notes,omitempty"`
	Currency           string        `json:"currency"`
	PackageValue       *float64      `json:"package_value,omitempty"`
	PackageValueText   string        `json:"package_value_text,omitempty"`
	ShippingFee        *float64      `json:"shipping_fee,omitempty"`
	ShippingFeeText    string        `json:"shipping_fee_text,omitempty"`
	DeliveryDays       *int          `json:"delivery_days,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	Links              shipmentLinks `json:"_links"`
}

type timelineEventResponse struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

type stageResponse struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

type progressResponse struct {
	CurrentIndex int             `json:"current_index"`
	Ratio        float64         `json:"ratio"`
	CustomsAlert bool            `json:"customs_alert"`
	Stages       []stageResponse `json:"stages"`
}

// trackingResponse is what the public tracking page renders.
type trackingResponse struct {
	Shipment shipmentResponse        `json:"shipment"`
	Progress progressResponse        `json:"progress"`
	Timeline []timelineEventResponse `json:"timeline"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listShipmentsResponse struct {
	Data       []shipmentResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type timelineResponse struct {
	Data []timelineEventResponse `json:"data"`
}
