package service

import (
	"context"

	"github.com/example/bookshop/internal/domain/address"
	"github.com/example/bookshop/internal/domain/member"
	"github.com/example/bookshop/internal/repository"
)

// MemberService owns member registration and lookup.
type MemberService struct {
	uow repository.UnitOfWork
}

func NewMemberService(uow repository.UnitOfWork) *MemberService {
	return &MemberService{uow: uow}
}

// Join registers a new member. Name uniqueness is checked here rather than
// with a storage constraint so the policy stays extensible; the check and
// the insert share one unit of work. Two truly simultaneous joins with the
// same name remain a narrow accepted race.
func (s *MemberService) Join(ctx context.Context, name, email string, addr address.Address) (string, error) {
	m, err := member.New(name, email, addr)
	if err != nil {
		return "", err
	}

	err = s.uow.Do(ctx, func(r repository.Repos) error {
		existing, err := r.Members().FindByName(ctx, name)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return member.ErrDuplicateName
		}
		_, err = r.Members().Save(ctx, m)
		return err
	})
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

// FindMembers lists all members.
func (s *MemberService) FindMembers(ctx context.Context) ([]*member.Member, error) {
	var members []*member.Member
	err := s.uow.DoReadOnly(ctx, func(r repository.Repos) error {
		var err error
		members, err = r.Members().FindAll(ctx)
		return err
	})
	return members, err
}

// FindOne loads a single member by id.
func (s *MemberService) FindOne(ctx context.Context, id string) (*member.Member, error) {
	var m *member.Member
	err := s.uow.DoReadOnly(ctx, func(r repository.Repos) error {
		var err error
		m, err = r.Members().FindByID(ctx, id)
		return err
	})
	return m, err
}
