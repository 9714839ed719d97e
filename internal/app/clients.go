package app

import (
	"fmt"

	"github.com/yungbote/eduadmin/internal/clients/twilio"
	"github.com/yungbote/eduadmin/internal/config"
	"github.com/yungbote/eduadmin/internal/platform/logger"
)

type Clients struct {
	// Twilio is nil unless OTP codes go out by SMS.
	Twilio twilio.Client
}

func wireClients(log *logger.Logger, cfg *config.Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients
	if cfg.DevAPI.OTP.SMS {
		tw, err := twilio.NewFromEnv(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init twilio: %w", err)
		}
		out.Twilio = tw
	}
	return out, nil
}
