package renderstate

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vr/internal/logger"
)

func log() *zap.Logger { return logger.Named("vr.render") }
