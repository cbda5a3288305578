// internal/clients/membership_client.go
package clients

import (
	"context"
	"net/http"
	"net/url"

	"fitnexus/internal/membership"
)

type MembershipClient struct {
	base
}

func NewMembershipClient(baseURL string, httpClient *http.Client) *MembershipClient {
	return &MembershipClient{base: newBase(baseURL, httpClient)}
}

// AddMemberRequest is the body of POST /members.
type AddMemberRequest struct {
	Tier      string `json:"tier"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob"`
	Location  string `json:"location"`
}

// ImportMemberRequest is the body of POST /members/import.
type ImportMemberRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	DOB        string `json:"dob"`
	Expiration string `json:"expiration"`
	Location   string `json:"location"`
}

func (c *MembershipClient) AddMember(ctx context.Context, req AddMemberRequest) (*membership.MemberView, error) {
	var member membership.MemberView
	if err := c.do(ctx, http.MethodPost, "/members", nil, req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *MembershipClient) ImportMember(ctx context.Context, req ImportMemberRequest) (*membership.MemberView, error) {
	var member membership.MemberView
	if err := c.do(ctx, http.MethodPost, "/members/import", nil, req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *MembershipClient) GetMember(ctx context.Context, id membership.Identity) (*membership.MemberView, error) {
	var member membership.MemberView
	if err := c.do(ctx, http.MethodGet, "/members/lookup", identityQuery(id), nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *MembershipClient) RemoveMember(ctx context.Context, id membership.Identity) error {
	return c.do(ctx, http.MethodDelete, "/members", identityQuery(id), nil, nil)
}

// ListMembers lists members ordered by sort: "", county, expiration or name.
func (c *MembershipClient) ListMembers(ctx context.Context, sort string) ([]membership.MemberView, error) {
	var query url.Values
	if sort != "" {
		query = url.Values{"sort": {sort}}
	}
	var members []membership.MemberView
	if err := c.do(ctx, http.MethodGet, "/members", query, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *MembershipClient) ListFees(ctx context.Context) ([]membership.MemberView, error) {
	var members []membership.MemberView
	if err := c.do(ctx, http.MethodGet, "/members/fees", nil, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func identityQuery(id membership.Identity) url.Values {
	return url.Values{
		"first_name": {id.FirstName},
		"last_name":  {id.LastName},
		"dob":        {id.DOB.String()},
	}
}
