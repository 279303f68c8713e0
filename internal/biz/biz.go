package biz

import "github.com/google/wire"

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(
	NewClock,
	NewLifeSettings,
	NewProviderSettings,
	NewCatalog,
	NewLifeUsecase,
	NewPaymentUsecase,
	NewPlayerUsecase,
	NewWordUsecase,
	NewScoreUsecase,
)
