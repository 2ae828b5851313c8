// Package event names the lifecycle notifications shared by the WebSocket
// hub and the Kafka outbox.
package event

const (
	NewDonation     = "newDonation"
	DonationClaimed = "donationClaimed"
	DonationExpired = "donationExpired"
)

// Event is the wire frame: {"event": name, "data": payload}.
type Event struct {
	Name string      `json:"event"`
	Data interface{} `json:"data"`
}

type Claimed struct {
	ID            string `json:"id"`
	ClaimedByName string `json:"claimed_by_name"`
}

type Expired struct {
	ID string `json:"id"`
}

func Created(donation interface{}) Event {
	return Event{Name: NewDonation, Data: donation}
}

func Claim(id, claimantName string) Event {
	return Event{Name: DonationClaimed, Data: Claimed{ID: id, ClaimedByName: claimantName}}
}

func Expire(id string) Event {
	return Event{Name: DonationExpired, Data: Expired{ID: id}}
}

func Known(name string) bool {
	switch name {
	case NewDonation, DonationClaimed, DonationExpired:
		return true
	default:
		return false
	}
}
