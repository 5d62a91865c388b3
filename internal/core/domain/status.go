package domain

import (
	"strings"
)

// ShipmentStatus identifies one stage of the shipment lifecycle.
type ShipmentStatus string

const (
	StatusOrderReceived          ShipmentStatus = "order_received"
	StatusPickedUp               ShipmentStatus = "picked_up"
	StatusDepartedOriginFacility ShipmentStatus = "departed_origin_facility"
	StatusInTransit              ShipmentStatus = "in_transit"
	StatusCustomsCheck           ShipmentStatus = "customs_check"
	StatusArrivedAtLocalFacility ShipmentStatus = "arrived_at_local_facility"
	StatusOutForDelivery         ShipmentStatus = "out_for_delivery"
	StatusDelivered              ShipmentStatus = "delivered"
)

// Stage is a named position in the fixed status sequence.
type Stage struct {
	Key   ShipmentStatus
	Label string
}

// Stages is the canonical ordered sequence. Order defines forward progress.
var Stages = []Stage{
	{Key: StatusOrderReceived, Label: "Order Received"},
	{Key: StatusPickedUp, Label: "Picked Up"},
	{Key: StatusDepartedOriginFacility, Label: "Departed Origin"},
	{Key: StatusInTransit, Label: "In Transit"},
	{Key: StatusCustomsCheck, Label: "Customs Check"},
	{Key: StatusArrivedAtLocalFacility, Label: "Local Facility"},
	{Key: StatusOutForDelivery, Label: "Out for Delivery"},
	{Key: StatusDelivered, Label: "Delivered"},
}

// NormalizeStatus folds free-text status values onto the key spelling:
// surrounding space is trimmed, letters are lower-cased and runs of spaces,
// hyphens or underscores collapse to a single underscore.
//
//	"In Transit" → "in_transit"
//	"out-for-delivery" → "out_for_delivery"
func NormalizeStatus(s string) ShipmentStatus {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	})
	return ShipmentStatus(strings.Join(fields, "_"))
}

// StageIndex returns the position of status in Stages. Unrecognised values
// resolve to 0 so that administratively entered free text never breaks rendering.
func StageIndex(status string) int {
	key := NormalizeStatus(status)
	for i, st := range Stages {
		if st.Key == key {
			return i
		}
	}
	return 0
}

// Valid reports whether s (after normalisation) is one of the canonical stages.
func (s ShipmentStatus) Valid() bool {
	key := NormalizeStatus(string(s))
	for _, st := range Stages {
		if st.Key == key {
			return true
		}
	}
	return false
}

// Label returns the display label for s, or s itself when it is not a stage.
func (s ShipmentStatus) Label() string {
	key := NormalizeStatus(string(s))
	for _, st := range Stages {
		if st.Key == key {
			return st.Label
		}
	}
	return string(s)
}

// StageProgress is the render state of a single stage.
type StageProgress struct {
	Key       ShipmentStatus `json:"key"`
	Label     string         `json:"label"`
	Completed bool           `json:"completed"`
	Current   bool           `json:"current"`
}

// Progress is the render-ready description of where a shipment sits in Stages.
type Progress struct {
	CurrentIndex  int             `json:"current_index"`
	Stages        []StageProgress `json:"stages"`
	ProgressRatio float64         `json:"progress_ratio"`
	CustomsAlert  bool            `json:"customs_alert"`
}

// TrackProgress maps a status and the customs-hold flag onto Stages.
//
// Every stage up to and including the current one is completed; exactly one
// stage is current. The customs alert mirrors heldByCustoms at any stage,
// including after customs_check has been passed.
func TrackProgress(status string, heldByCustoms bool) Progress {
	current := StageIndex(status)

	stages := make([]StageProgress, len(Stages))
	for j, st := range Stages {
		stages[j] = StageProgress{
			Key:       st.Key,
			Label:     st.Label,
			Completed: j <= current,
			Current:   j == current,
		}
	}

	return Progress{
		CurrentIndex:  current,
		Stages:        stages,
		ProgressRatio: progressRatio(current, len(Stages)),
		CustomsAlert:  heldByCustoms,
	}
}

func progressRatio(index, n int) float64 {
	if n <= 1 {
		return 1
	}
	r := float64(index) / float64(n-1)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
