package usecase

import (
	"github.com/bidmarket/goapi/base/ctx"
	"github.com/bidmarket/goapi/base/log"
	"github.com/bidmarket/goapi/domain"
	"github.com/bidmarket/goapi/domain/paytoken"
)

type impl struct {
	repo paytoken.Repo
}

func New(repo paytoken.Repo) paytoken.Usecase {
	return &impl{repo}
}

func (im *impl) IsSupported(c ctx.Ctx, accountId domain.AccountId) (bool, error) {
	_, err := im.repo.FindOne(c, accountId)
	if err == domain.ErrNotFound {
		return false, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"accountId": accountId,
		}).Error("repo.FindOne failed")
		return false, err
	}
	return true, nil
}

func (im *impl) List(c ctx.Ctx) ([]*paytoken.PayToken, error) {
	return im.repo.FindAll(c)
}

func (im *impl) Register(c ctx.Ctx, t *paytoken.PayToken) error {
	if !t.AccountId.IsValid() {
		return domain.ErrInvalidAccountId
	}
	return im.repo.Upsert(c, t)
}
