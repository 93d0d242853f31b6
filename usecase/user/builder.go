package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/dao"
	"github.com/radhian/sip-engine/infra/db/model"
	"github.com/radhian/sip-engine/infra/idgen"
)

const (
	defaultName  = "Demo User"
	defaultEmail = "demo@example.com"
)

type UserUsecase interface {
	CreateUser(req entity.CreateUserRequest) (model.User, error)
	GetUser(userID string) (model.User, error)
}

type userUsecase struct {
	dao   dao.UserDao
	idgen idgen.Generator
}

func NewUserUsecase(userDao dao.UserDao, gen idgen.Generator) UserUsecase {
	return &userUsecase{dao: userDao, idgen: gen}
}

func (u *userUsecase) CreateUser(req entity.CreateUserRequest) (model.User, error) {
	user := model.User{
		ID:         u.idgen.Generate(consts.PrefixUser),
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		CreateTime: time.Now().Unix(),
	}
	if user.Name == "" {
		user.Name = defaultName
	}
	if user.Email == "" {
		user.Email = defaultEmail
	}

	if err := u.dao.CreateUser(user); err != nil {
		return user, err
	}
	log.Infof("[User] created %s (%s)", user.ID, user.Name)
	return user, nil
}

func (u *userUsecase) GetUser(userID string) (model.User, error) {
	user, found, err := u.dao.GetUserByID(userID)
	if err != nil {
		return user, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	if !found {
		return user, entity.NewNotFoundError(entity.KindUser, userID)
	}
	return user, nil
}
