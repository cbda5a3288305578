// internal/membership/domain.go
package membership

import (
	"fmt"
	"strings"

	"fitnexus/internal/apperr"
	"fitnexus/internal/calendar"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// memberNamespace seeds name-based member IDs so that an identity always
// maps to the same aggregate.
var memberNamespace = uuid.MustParse("6f1c0c52-3f0e-4d2b-9a57-2a4f6b1f8e10")

// Identity is the lookup and uniqueness key of a member.
// Names compare case-insensitively.
type Identity struct {
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	DOB       calendar.Date `json:"dob"`
}

// IdentityKey is the comparable form of an Identity.
type IdentityKey struct {
	FirstName string
	LastName  string
	DOB       calendar.Date
}

// Key folds the names so that equal identities yield equal keys.
func (id Identity) Key() IdentityKey {
	fold := cases.Fold()
	return IdentityKey{
		FirstName: fold.String(id.FirstName),
		LastName:  fold.String(id.LastName),
		DOB:       id.DOB,
	}
}

// Matches reports whether two identities name the same member.
func (id Identity) Matches(other Identity) bool {
	return id.Key() == other.Key()
}

// AggregateID is the deterministic journal ID for the identity.
func (id Identity) AggregateID() uuid.UUID {
	k := id.Key()
	return uuid.NewSHA1(memberNamespace, []byte(k.FirstName+"\x00"+k.LastName+"\x00"+k.DOB.String()))
}

func (id Identity) String() string {
	return fmt.Sprintf("%s %s %s", id.FirstName, id.LastName, id.DOB)
}

// Location is one of the gym's fixed sites.
type Location string

const (
	Bridgewater Location = "BRIDGEWATER"
	Edison      Location = "EDISON"
	Franklin    Location = "FRANKLIN"
	Piscataway  Location = "PISCATAWAY"
	Somerville  Location = "SOMERVILLE"
)

type site struct {
	zip    string
	county string
}

var sites = map[Location]site{
	Bridgewater: {zip: "08807", county: "SOMERSET"},
	Edison:      {zip: "08837", county: "MIDDLESEX"},
	Franklin:    {zip: "08873", county: "SOMERSET"},
	Piscataway:  {zip: "08854", county: "MIDDLESEX"},
	Somerville:  {zip: "08876", county: "SOMERSET"},
}

// Locations lists every site in declaration order.
func Locations() []Location {
	return []Location{Bridgewater, Edison, Franklin, Piscataway, Somerville}
}

// ParseLocation looks a site up by name, ignoring case.
func ParseLocation(name string) (Location, error) {
	loc := Location(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := sites[loc]; !ok {
		return "", apperr.New(apperr.CodeLocationNotFound, "%s - invalid location", name)
	}
	return loc, nil
}

func (l Location) ZipCode() string { return sites[l].zip }
func (l Location) County() string  { return sites[l].county }

// Member is a membership record.
type Member struct {
	ID uuid.UUID `json:"id"`
	Identity
	Expiration  calendar.Date `json:"expiration"`
	Location    Location      `json:"location"`
	Tier        Tier          `json:"tier"`
	GuestPasses int           `json:"guest_passes"`
	Version     int           `json:"version"`
}

// Policy returns the rules of the member's tier.
func (m *Member) Policy() Policy {
	return m.Tier.Policy()
}

// Fee is the membership fee charged for the member's tier.
func (m *Member) Fee() Money {
	return m.Policy().Fee()
}

// IsExpired treats a membership expiring today as already expired.
func (m *Member) IsExpired(today calendar.Date) bool {
	return m.Expiration.Compare(today) <= 0
}

// UseGuestPass consumes one pass if any remain.
func (m *Member) UseGuestPass() bool {
	if m.GuestPasses <= 0 {
		return false
	}
	m.GuestPasses--
	return true
}

// ReturnGuestPass restores one pass up to the tier budget.
func (m *Member) ReturnGuestPass() bool {
	if m.GuestPasses >= m.Policy().GuestPassBudget {
		return false
	}
	m.GuestPasses++
	return true
}

// MemberAddedEvent is recorded when a member joins or is imported.
type MemberAddedEvent struct {
	ID         uuid.UUID     `json:"id"`
	FirstName  string        `json:"first_name"`
	LastName   string        `json:"last_name"`
	DOB        calendar.Date `json:"dob"`
	Tier       Tier          `json:"tier"`
	Location   Location      `json:"location"`
	Expiration calendar.Date `json:"expiration"`
}

// MemberRemovedEvent is recorded when a member is cancelled.
type MemberRemovedEvent struct {
	ID uuid.UUID `json:"id"`
}

// GuestPassEvent is recorded when a pass is used or returned.
type GuestPassEvent struct {
	ID      uuid.UUID `json:"id"`
	Balance int       `json:"balance"`
}
