package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/deemkeen/herald/client"
	"github.com/deemkeen/herald/domain"
	"github.com/deemkeen/herald/i18n"
	"github.com/deemkeen/herald/services"
	"github.com/deemkeen/herald/util"
	"github.com/rs/zerolog/log"
)

// NewServices wires the process wide services on top of api. The navbar
// refresh loop runs until ctx ends.
func NewServices(ctx context.Context, conf *util.AppConfig, api *client.Client) (Services, error) {
	tr, err := i18n.New(conf.Conf.Language)
	if err != nil {
		return Services{}, fmt.Errorf("loading translations: %w", err)
	}

	users := services.NewAuthStore(domain.User{})
	if err := users.Refresh(ctx, api); err != nil {
		return Services{}, fmt.Errorf("fetching current user: %w", err)
	}
	user := users.User()
	log.Info().Str("user", user.Username).Bool("admin", user.Admin).Msg("authenticated")

	navbar := services.NewNavbarService(ctx, api)
	go navbar.Run(ctx, time.Duration(conf.Conf.NavbarRefresh)*time.Second)

	return Services{
		Broadcasts: services.NewBroadcastService(api),
		Users:      users,
		UserAPI:    api,
		Navbar:     navbar,
		Translator: tr,
		Config:     conf,
	}, nil
}
