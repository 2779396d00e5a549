package repoargs

import "github.com/investogold/goldvest/internal/domain"

type CreateUser struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Country      string
	PasswordHash string
	Membership   domain.MembershipType
}
