package handler

import (
	"net/url"
	"strings"

	"github.com/swiftex/tracking-service/internal/core/domain"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createShipmentRequest) ports.CreateShipmentInput {
	return ports.CreateShipmentInput{
		TrackingCode:       req.TrackingCode,
		Sender:             toParty(req.Sender),
		Receiver:           toParty(req.Receiver),
		Origin:             toPlace(req.Origin),
		Destination:        toPlace(req.Destination),
		PackageDescription: req.PackageDescription,
		PackageWeightKg:    req.PackageWeightKg,
		Status:             domain.ShipmentStatus(req.Status),
		CurrentLocation:    req.CurrentLocation,
		EstimatedDelivery:  req.EstimatedDelivery,
		HeldByCustoms:      req.HeldByCustoms,
		Notes:              req.Notes,
		Currency:           req.Currency,
		PackageValue:       req.PackageValue,
		ShippingFee:        req.ShippingFee,
		DeliveryDays:       req.DeliveryDays,
	}
}

func toUpdateInput(req updateShipmentRequest) ports.UpdateShipmentInput {
	in := ports.UpdateShipmentInput{
		PackageDescription: req.PackageDescription,
		PackageWeightKg:    req.PackageWeightKg,
		CurrentLocation:    req.CurrentLocation,
		EstimatedDelivery:  req.EstimatedDelivery,
		HeldByCustoms:      req.HeldByCustoms,
		Notes:              req.Notes,
		Currency:           req.Currency,
		PackageValue:       req.PackageValue,
		ShippingFee:        req.ShippingFee,
		DeliveryDays:       req.DeliveryDays,
		EventLocation:      req.EventLocation,
		EventDescription:   req.EventDescription,
	}
	if req.Sender != nil {
		p := toParty(*req.Sender)
		in.Sender = &p
	}
	if req.Receiver != nil {
		p := toParty(*req.Receiver)
		in.Receiver = &p
	}
	if req.Origin != nil {
		p := toPlace(*req.Origin)
		in.Origin = &p
	}
	if req.Destination != nil {
		p := toPlace(*req.Destination)
		in.Destination = &p
	}
	if req.Status != nil {
		st := domain.ShipmentStatus(*req.Status)
		in.Status = &st
	}
	return in
}

func toParty(p partyRequest) domain.Party {
	return domain.Party{Name: strings.TrimSpace(p.Name), Address: strings.TrimSpace(p.Address)}
}

func toPlace(p placeRequest) domain.Place {
	return domain.Place{City: strings.TrimSpace(p.City), Country: strings.TrimSpace(p.Country)}
}

// --- Domain → HTTP response ---

func toShipmentResponse(s *domain.Shipment) shipmentResponse {
	resp := shipmentResponse{
		ID:                 s.ID,
		TrackingCode:       s.TrackingCode,
		Sender:             partyResponse{Name: s.Sender.Name, Address: s.Sender.Address},
		Receiver:           partyResponse{Name: s.Receiver.Name, Address: s.Receiver.Address},
		Origin:             placeResponse{City: s.Origin.City, Country: s.Origin.Country},
		Destination:        placeResponse{City: s.Destination.City, Country: s.Destination.Country},
		PackageDescription: s.PackageDescription,
		PackageWeightKg:    s.PackageWeightKg,
		Status:             string(s.Status),
		StatusLabel:        s.Status.Label(),
		CurrentLocation:    s.CurrentLocation,
		EstimatedDelivery:  s.EstimatedDelivery,
		HeldByCustoms:      s.HeldByCustoms,
		Notes:              s.Notes,
		Currency:           s.Currency,
		PackageValue:       s.PackageValue,
		ShippingFee:        s.ShippingFee,
		DeliveryDays:       s.DeliveryDays,
		CreatedAt:          s.CreatedAt.UTC(),
		UpdatedAt:          s.UpdatedAt.UTC(),
		Links: shipmentLinks{
			Self:     "/v1/admin/shipments/" + s.ID,
			Timeline: "/v1/admin/shipments/" + s.ID + "/timeline",
			Tracking: "/v1/tracking?code=" + url.QueryEscape(s.TrackingCode),
		},
	}
	if s.PackageValue != nil {
		resp.PackageValueText = domain.FormatAmount(s.Currency, *s.PackageValue)
	}
	if s.ShippingFee != nil {
		resp.ShippingFeeText = domain.FormatAmount(s.Currency, *s.ShippingFee)
	}
	return resp
}

func toTimelineResponse(events []domain.TimelineEvent) []timelineEventResponse {
	out := make([]timelineEventResponse, len(events))
	for i, e := range events {
		out[i] = toTimelineEventResponse(e)
	}
	return out
}

func toTimelineEventResponse(e domain.TimelineEvent) timelineEventResponse {
	return timelineEventResponse{
		ID:          e.ID,
		Status:      string(e.Status),
		StatusLabel: e.Status.Label(),
		Location:    e.Location,
		Description: e.Description,
		Timestamp:   e.Timestamp.UTC(),
	}
}

func toProgressResponse(p domain.Progress) progressResponse {
	stages := make([]stageResponse, len(p.Stages))
	for i, st := range p.Stages {
		stages[i] = stageResponse{
			Key:       string(st.Key),
			Label:     st.Label,
			Completed: st.Completed,
			Current:   st.Current,
		}
	}
	return progressResponse{
		CurrentIndex: p.CurrentIndex,
		Ratio:        p.ProgressRatio,
		CustomsAlert: p.CustomsAlert,
		Stages:       stages,
	}
}

func toTrackingResponse(v *ports.TrackingView) trackingResponse {
	return trackingResponse{
		Shipment: toShipmentResponse(v.Shipment),
		Progress: toProgressResponse(v.Progress),
		Timeline: toTimelineResponse(v.Timeline),
	}
}

func toListResponse(r *ports.ListShipmentsResult) listShipmentsResponse {
	items := make([]shipmentResponse, len(r.Items))
	for i, s := range r.Items {
		items[i] = toShipmentResponse(s)
	}
	return listShipmentsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func domainStatus(s string) domain.ShipmentStatus {
	return domain.NormalizeStatus(s)
}
