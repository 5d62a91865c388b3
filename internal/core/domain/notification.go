package domain

import "time"

// ChangeKind classifies a row-level change to a shipment or its timeline.
type ChangeKind string

const (
	ChangeShipmentCreated  ChangeKind = "shipment_created"
	ChangeShipmentUpdated  ChangeKind = "shipment_updated"
	ChangeShipmentDeleted  ChangeKind = "shipment_deleted"
	ChangeTimelineAppended ChangeKind = "timeline_appended"
)

// Transports that can deliver a ChangeNotification.
const (
	SourcePush = "push"
	SourcePoll = "poll"
)

// ChangeNotification tells subscribers that a shipment changed and should be re-read.
type ChangeNotification struct {
	TrackingCode string         `json:"tracking_code"`
	ShipmentID   string         `json:"shipment_id"`
	Kind         ChangeKind     `json:"kind"`
	Status       ShipmentStatus `json:"status,omitempty"`
	At           time.Time      `json:"at"`
	Source       string         `json:"source,omitempty"`
}
