package application

import (
	"context"

	"github.com/oksasatya/go-session-auth/internal/domain/entity"
	"github.com/oksasatya/go-session-auth/internal/oauth"
	"github.com/oksasatya/go-session-auth/internal/session"
)

// ReconcileTwitter reconciles an external identity with the local accounts
// and logs the result into the caller's session.
//
// Lookup order defines precedence: a twitter_id match always wins over an
// email match, so the two queries run separately instead of as one OR.
//
//  1. account with this twitter_id -> returning login, no mutation
//  2. else account with the first candidate email -> merge: link twitter_id
//  3. else -> create a fresh account with twitter_id, optional email, no
//     password
//
// Find-then-create is not transactionally guarded: two concurrent first-time
// callbacks for the same external id can each create a row.
func (s *Service) ReconcileTwitter(ctx context.Context, p *oauth.Profile, sess *session.Session) (*entity.User, error) {
	u, err := s.Repo.GetByTwitterID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if u == nil && len(p.Emails) > 0 {
		u, err = s.Repo.GetByEmail(ctx, p.Emails[0])
		if err != nil {
			return nil, err
		}
	}

	switch {
	case u == nil:
		// this user needs to be registered
		tid := p.ID
		u = &entity.User{TwitterID: &tid}
		if len(p.Emails) > 0 {
			email := p.Emails[0]
			u.Email = &email
		}
		if err := s.Repo.Create(ctx, u); err != nil {
			return nil, err
		}
		s.indexUser(ctx, u)
	case u.TwitterID == nil || *u.TwitterID == "":
		// merge: account found by email, attach the external id
		tid := p.ID
		u.TwitterID = &tid
		if err := s.Repo.Update(ctx, u); err != nil {
			return nil, err
		}
		s.indexUser(ctx, u)
	default:
		// returning user, twitter_id already linked
	}

	if err := sess.SetUserID(ctx, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}
