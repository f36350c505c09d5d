package application

import (
	"github.com/syatt-io/syatt-fulfillment/internal/domain"
)

// ToDomainGroups converts delivery group inputs to domain groups, treating
// missing collections as empty at every level.
func ToDomainGroups(inputs []DeliveryGroupInput) []domain.DeliveryGroup {
	groups := make([]domain.DeliveryGroup, 0, len(inputs))
	for _, in := range inputs {
		options := make([]domain.DeliveryOption, 0, len(in.DeliveryOptions))
		for _, opt := range in.DeliveryOptions {
			options = append(options, domain.DeliveryOption{
				Handle:      opt.Handle,
				Title:       opt.Title,
				Code:        opt.Code,
				Description: opt.Description,
			})
		}
		groups = append(groups, domain.DeliveryGroup{
			ID:      in.ID,
			Options: options,
		})
	}
	return groups
}

// ToEvaluationResultDTO converts a decision into the checkout operation
// envelope. Operations without a handle are dropped: the checkout cannot
// address an option it cannot name.
func ToEvaluationResultDTO(decision domain.Decision) *EvaluationResultDTO {
	operations := make([]OperationDTO, 0, len(decision.Operations))
	for _, op := range decision.Operations {
		if op.Handle == "" {
			continue
		}
		operations = append(operations, OperationDTO{
			DeliveryOptionHide: HideOperationDTO{DeliveryOptionHandle: op.Handle},
		})
	}
	return &EvaluationResultDTO{Operations: operations}
}

// ToCartDTO converts a storefront cart to its API representation
func ToCartDTO(cart *domain.Cart) *CartDTO {
	if cart == nil {
		return nil
	}
	prefs := cart.Preference()
	return &CartDTO{
		CartID:             cart.ID,
		CheckoutURL:        cart.CheckoutURL,
		TotalQuantity:      cart.TotalQuantity,
		FulfillmentType:    prefs.FulfillmentType,
		PickupLocationID:   prefs.PickupLocationID,
		PickupLocationName: prefs.PickupLocationName,
	}
}

// ToPreferenceDTO converts an audit record to its API representation
func ToPreferenceDTO(audit *domain.PreferenceAudit) *PreferenceDTO {
	if audit == nil {
		return nil
	}
	return &PreferenceDTO{
		CartID:             audit.CartID,
		FulfillmentType:    audit.FulfillmentType,
		PickupLocationID:   audit.PickupLocationID,
		PickupLocationName: audit.PickupLocationName,
		UpdatedAt:          audit.RecordedAt,
	}
}

// ToPreferenceAuditDTOs converts audit records to their API representation
func ToPreferenceAuditDTOs(audits []*domain.PreferenceAudit) []PreferenceAuditDTO {
	dtos := make([]PreferenceAuditDTO, 0, len(audits))
	for _, a := range audits {
		dtos = append(dtos, PreferenceAuditDTO{
			CartID:             a.CartID,
			FulfillmentType:    a.FulfillmentType,
			PreviousType:       a.PreviousType,
			PickupLocationID:   a.PickupLocationID,
			PickupLocationName: a.PickupLocationName,
			RecordedAt:         a.RecordedAt,
		})
	}
	return dtos
}

// ToLocationDTO converts a pickup location to its API representation
func ToLocationDTO(location *domain.PickupLocation) *LocationDTO {
	if location == nil {
		return nil
	}
	return &LocationDTO{
		LocationID:   location.LocationID,
		Name:         location.Name,
		Address:      location.Address,
		City:         location.City,
		Province:     location.Province,
		Country:      location.Country,
		PostalCode:   location.PostalCode,
		Phone:        location.Phone,
		Instructions: location.Instructions,
		Active:       location.Active,
		CreatedAt:    location.CreatedAt,
		UpdatedAt:    location.UpdatedAt,
	}
}

// ToLocationDTOs converts a slice of pickup locations
func ToLocationDTOs(locations []*domain.PickupLocation) []LocationDTO {
	dtos := make([]LocationDTO, 0, len(locations))
	for _, l := range locations {
		dtos = append(dtos, *ToLocationDTO(l))
	}
	return dtos
}

// ToCartLines converts cart line inputs to domain cart lines
func ToCartLines(inputs []CartLineInput) []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(inputs))
	for _, in := range inputs {
		lines = append(lines, domain.CartLine{
			MerchandiseID: in.MerchandiseID,
			Quantity:      in.Quantity,
		})
	}
	return lines
}
