package node

import (
	"net/http"
	"net/url"
)

func userOperations() []Definition {
	return []Definition{
		{
			Key:          OperationKey{ResourceUser, "getRepositories"},
			Method:       http.MethodGet,
			Endpoint:     "/users/{owner}/repos",
			Description:  "Returns the repositories of a user",
			Shape:        ReplaceFlatten,
			Paginated:    true,
			NoRepository: true,
			build: func(_ params, _ Item, t target) (*RequestSpec, error) {
				return request(http.MethodGet, "/users/"+url.PathEscape(t.owner)+"/repos"), nil
			},
		},
		{
			Key:          OperationKey{ResourceUser, "invite"},
			Method:       http.MethodPost,
			Endpoint:     "/orgs/{organization}/invitations",
			Description:  "Invites a user to an organization",
			Shape:        ReplaceSingle,
			NoOwner:      true,
			NoRepository: true,
			build: func(p params, _ Item, _ target) (*RequestSpec, error) {
				org, err := p.requiredString("organization")
				if err != nil {
					return nil, err
				}
				email, err := p.requiredString("email")
				if err != nil {
					return nil, err
				}
				spec := request(http.MethodPost, "/orgs/"+url.PathEscape(org)+"/invitations")
				spec.Body["email"] = email
				return spec, nil
			},
		},
	}
}
