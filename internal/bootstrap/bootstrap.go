package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	deviceinadapter "ritual/internal/modules/device/adapter/in"
	deviceoutadapter "ritual/internal/modules/device/adapter/out"
	devicein "ritual/internal/modules/device/port/in"
	deviceservice "ritual/internal/modules/device/service"
	deviceusecase "ritual/internal/modules/device/usecase"
	instagraminadapter "ritual/internal/modules/instagram/adapter/in"
	instagramoutadapter "ritual/internal/modules/instagram/adapter/out"
	instagramin "ritual/internal/modules/instagram/port/in"
	instagramservice "ritual/internal/modules/instagram/service"
	instagramusecase "ritual/internal/modules/instagram/usecase"
	settingsinadapter "ritual/internal/modules/settings/adapter/in"
	settingsoutadapter "ritual/internal/modules/settings/adapter/out"
	settingsin "ritual/internal/modules/settings/port/in"
	settingsservice "ritual/internal/modules/settings/service"
	settingsusecase "ritual/internal/modules/settings/usecase"
	summaryinadapter "ritual/internal/modules/summary/adapter/in"
	summaryoutadapter "ritual/internal/modules/summary/adapter/out"
	summaryin "ritual/internal/modules/summary/port/in"
	summaryservice "ritual/internal/modules/summary/service"
	summaryusecase "ritual/internal/modules/summary/usecase"
	traininginadapter "ritual/internal/modules/training/adapter/in"
	trainingoutadapter "ritual/internal/modules/training/adapter/out"
	trainingin "ritual/internal/modules/training/port/in"
	trainingservice "ritual/internal/modules/training/service"
	trainingusecase "ritual/internal/modules/training/usecase"
	unlockoutadapter "ritual/internal/modules/unlock/adapter/out"
	unlockin "ritual/internal/modules/unlock/port/in"
	unlockservice "ritual/internal/modules/unlock/service"
	unlockusecase "ritual/internal/modules/unlock/usecase"
	usageoutadapter "ritual/internal/modules/usage/adapter/out"
	usagein "ritual/internal/modules/usage/port/in"
	usageservice "ritual/internal/modules/usage/service"
	usageusecase "ritual/internal/modules/usage/usecase"
	"ritual/internal/platform/alert"
	"ritual/internal/platform/clock"
	"ritual/internal/platform/config"
	"ritual/internal/platform/id"
	"ritual/internal/platform/kv"
	uiapp "ritual/internal/ui/app"
)

// Usecases are the inbound ports, shared by the CLI, the HTTP API and the TUI.
type Usecases struct {
	Device    devicein.Usecase
	Unlock    unlockin.Usecase
	Usage     usagein.Usecase
	Instagram instagramin.Usecase
	Settings  settingsin.Usecase
	Training  trainingin.Usecase
	Summary   summaryin.Usecase
}

type App struct {
	Config config.Config
	Logger *zap.Logger

	Usecases Usecases

	DeviceCLI    deviceinadapter.CLIHandler
	InstagramCLI instagraminadapter.CLIHandler
	SettingsCLI  settingsinadapter.CLIHandler
	TrainingCLI  traininginadapter.CLIHandler
	SummaryCLI   summaryinadapter.CLIHandler

	Outbox *alert.OutboxSink

	store *kv.SQLiteStore
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := clock.SystemClock{}

	store, err := kv.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	outbox := alert.NewOutboxSink(cfg.DataDir, id.UUID{})
	alerts := alert.NewLimiter(store, alert.Fanout{alert.NewLogSink(logger), outbox}, logger.Named("alert"))

	settingsUC := settingsusecase.NewInteractor(settingsservice.NewSettingsService(
		settingsoutadapter.NewKVSettingsStore(store, logger),
		logger.Named("settings"),
	))

	usageUC := usageusecase.NewInteractor(usageservice.NewUsageService(
		usageoutadapter.NewKVTransitionLog(store, logger),
		cfg.SelfPackage,
		logger.Named("usage"),
	))

	trainingUC := trainingusecase.NewInteractor(trainingservice.NewTracker(
		clk,
		trainingoutadapter.NewKVTimerStore(store, logger),
		trainingoutadapter.NewKVSessionLog(store, logger),
		trainingoutadapter.NewSettingsAdapter(settingsUC),
		alerts,
		logger.Named("training"),
	))

	unlockUC := unlockusecase.NewInteractor(unlockservice.NewReconstructor(unlockservice.Dependencies{
		State:         unlockoutadapter.NewKVStateStore(store, logger),
		Events:        unlockoutadapter.NewKVEventLog(store, logger),
		Notifications: unlockoutadapter.NewKVNotificationLog(store, logger),
		Foreground:    unlockoutadapter.NewUsageForegroundAdapter(usageUC),
		Settings:      unlockoutadapter.NewSettingsAdapter(settingsUC),
		Alerts:        alerts,
		Training:      unlockoutadapter.NewTrainingAdapter(trainingUC),
		SelfPackage:   cfg.SelfPackage,
		Logger:        logger.Named("unlock"),
	}))

	instagramUC := instagramusecase.NewInteractor(instagramservice.NewInstagramService(
		instagramoutadapter.NewKVEventLog(store, logger),
		instagramoutadapter.NewSettingsAdapter(settingsUC),
		logger.Named("instagram"),
	))

	summaryUC := summaryusecase.NewInteractor(summaryservice.NewSummaryService(summaryservice.Dependencies{
		Cache:     summaryoutadapter.NewKVCache(store, logger),
		Unlocks:   summaryoutadapter.NewUnlockAdapter(unlockUC),
		Usage:     summaryoutadapter.NewUsageAdapter(usageUC),
		Instagram: summaryoutadapter.NewInstagramAdapter(instagramUC),
		Exporter:  summaryoutadapter.NewVaultExporter(cfg.VaultPath),
		Logger:    logger.Named("summary"),
	}))

	deviceUC := deviceusecase.NewInteractor(deviceservice.NewDispatcher(
		clk,
		deviceoutadapter.NewUnlockSink(unlockUC),
		deviceoutadapter.NewPackageSink(instagramUC),
		deviceoutadapter.NewUsageSink(usageUC),
		logger.Named("device"),
	))

	return &App{
		Config: cfg,
		Logger: logger,
		Usecases: Usecases{
			Device:    deviceUC,
			Unlock:    unlockUC,
			Usage:     usageUC,
			Instagram: instagramUC,
			Settings:  settingsUC,
			Training:  trainingUC,
			Summary:   summaryUC,
		},
		DeviceCLI:    deviceinadapter.NewCLIHandler(deviceUC),
		InstagramCLI: instagraminadapter.NewCLIHandler(instagramUC),
		SettingsCLI:  settingsinadapter.NewCLIHandler(settingsUC),
		TrainingCLI:  traininginadapter.NewCLIHandler(trainingUC),
		SummaryCLI:   summaryinadapter.NewCLIHandler(summaryUC),
		Outbox:       outbox,
		store:        store,
	}, nil
}

// InboxWatcher builds a watcher that feeds dropped signal files to the device
// dispatcher.
func (a *App) InboxWatcher(dir string) *deviceinadapter.InboxWatcher {
	return deviceinadapter.NewInboxWatcher(dir, a.Usecases.Device, a.Logger.Named("inbox"))
}

func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.SummaryCLI, app.TrainingCLI, app.SettingsCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
