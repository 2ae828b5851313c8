package storage

import "gitlab.com/foodshare/backend/internal/repository"

func toRepoDonation(d Donation) *repository.Donation {
	row := &repository.Donation{
		ID:                  d.ID,
		DonorID:             d.DonorID,
		DonorName:           d.DonorName,
		ContactPerson:       d.ContactPerson,
		Phone:               d.Phone,
		Email:               optional(d.Email),
		FoodType:            d.FoodType,
		Quantity:            d.Quantity,
		FoodDescription:     d.FoodDescription,
		PreparedTime:        d.PreparedTime,
		ExpiryTime:          d.ExpiryTime,
		Address:             d.Address,
		City:                d.City,
		Pincode:             d.Pincode,
		SpecialInstructions: optional(d.SpecialInstructions),
		Status:              string(d.Status),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
	if d.ClaimedBy != nil {
		row.ClaimedBy = &d.ClaimedBy.ID
		row.ClaimedByName = &d.ClaimedBy.Name
	}
	return row
}

func fromRepoDonation(row *repository.Donation) Donation {
	d := Donation{
		ID:                  row.ID,
		DonorID:             row.DonorID,
		DonorName:           row.DonorName,
		ContactPerson:       row.ContactPerson,
		Phone:               row.Phone,
		Email:               deref(row.Email),
		FoodType:            row.FoodType,
		Quantity:            row.Quantity,
		FoodDescription:     row.FoodDescription,
		PreparedTime:        row.PreparedTime,
		ExpiryTime:          row.ExpiryTime,
		Address:             row.Address,
		City:                row.City,
		Pincode:             row.Pincode,
		SpecialInstructions: deref(row.SpecialInstructions),
		Status:              Status(row.Status),
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
	if row.ClaimedBy != nil {
		d.ClaimedBy = &Claimant{ID: *row.ClaimedBy, Name: deref(row.ClaimedByName)}
	}
	return d
}

func fromRepoDonations(rows []*repository.Donation) []Donation {
	donations := make([]Donation, len(rows))
	for i, row := range rows {
		donations[i] = fromRepoDonation(row)
	}
	return donations
}

func fromRepoAccount(row *repository.Account) Account {
	return Account{
		ID:           row.ID,
		Role:         row.Role,
		Name:         row.Name,
		Email:        row.Email,
		Phone:        row.Phone,
		City:         deref(row.City),
		FarmSize:     row.FarmSize,
		PrimaryCrops: row.PrimaryCrops,
		CreatedAt:    row.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
