package app

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"edmdecode/internal/appconfig"
	"edmdecode/internal/csvexport"
	"edmdecode/internal/edm"
	"edmdecode/internal/logging"
)

// Application wires together the config profile, the decode log
// rotator, and the CSV writer, and drives them over a batch of files.
type Application struct {
	config     Config
	logger     *logrus.Logger
	profile    *appconfig.Profile
	logRotator *logging.LogRotator
	csvWriter  *csvexport.Writer

	abort chan struct{}
}

// NewApplication creates a new application instance
func NewApplication(config Config) *Application {
	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config: config,
		logger: logger,
		abort:  make(chan struct{}),
	}
}

// Start initializes components and decodes every configured file,
// writing one CSV per decoded flight. An interrupt between files
// aborts the remaining batch cleanly.
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("Starting EDM flight data decoder")

	if err := app.initializeComponents(); err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		app.logger.Warn("Received shutdown signal, aborting remaining files")
		close(app.abort)
	}()

	err := app.run()
	app.shutdown()
	return err
}

// initializeComponents loads the YAML profile, overlays it onto the
// CLI config, and initializes the log rotator and CSV writer.
func (app *Application) initializeComponents() error {
	var err error

	app.profile, err = appconfig.Load(app.config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config profile: %w", err)
	}
	app.applyProfile()

	app.logRotator, err = logging.NewLogRotator(app.config.LogDir, app.config.LogRotateUTC, app.profile.LogRetainDays, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize log rotator: %w", err)
	}

	w, err := app.logRotator.GetWriter()
	if err != nil {
		return fmt.Errorf("failed to attach log rotator: %w", err)
	}
	app.logger.SetOutput(io.MultiWriter(os.Stderr, w))

	app.csvWriter = csvexport.NewWriter(app.logger)

	return nil
}

// applyProfile overlays YAML profile values onto the config wherever
// the CLI left a field at its default.
func (app *Application) applyProfile() {
	if app.profile.DefaultUnit != "" && app.config.Unit == DefaultUnit {
		app.config.Unit = app.profile.DefaultUnit
	}
	if app.profile.OutputDir != "" && app.config.OutDir == DefaultOutDir {
		app.config.OutDir = app.profile.OutputDir
	}
	if app.profile.LogDir != "" && app.config.LogDir == DefaultLogDir {
		app.config.LogDir = app.profile.LogDir
	}
}

// run decodes every configured file in turn, bailing out early if an
// abort signal arrives between files.
func (app *Application) run() error {
	unit := parseUnit(app.config.Unit)
	mode := parseChecksumMode(app.profile.ChecksumMode)

	for _, path := range app.config.Files {
		select {
		case <-app.abort:
			return fmt.Errorf("aborted before processing %s", path)
		default:
		}

		if err := app.processFile(path, unit, mode); err != nil {
			app.logger.WithError(err).WithField("file", path).Error("Failed to process file")
		}
	}

	return nil
}

// processFile opens one JPI file, logs its header, decodes the
// requested flight(s), and writes a CSV per non-empty flight.
func (app *Application) processFile(path string, unit edm.TempUnit, mode edm.ChecksumMode) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	parser, err := edm.OpenWithMode(data, unit, mode)
	if err != nil {
		return fmt.Errorf("failed to parse header of %s: %w", path, err)
	}

	tail := "unknown"
	if t := parser.TailNumber(); t != nil {
		tail = *t
	}
	app.applyAlarmOverride(parser.Metadata(), tail)

	app.logger.WithFields(logrus.Fields{
		"file":         path,
		"tail_number":  tail,
		"model":        parser.ModelString(),
		"flight_count": parser.FlightCount(),
	}).Info("Parsed header")

	var flights []*edm.Flight
	if app.config.FlightNumber != 0 {
		f := parser.Flight(uint16(app.config.FlightNumber))
		if f == nil {
			return fmt.Errorf("flight %d not found in %s", app.config.FlightNumber, path)
		}
		flights = []*edm.Flight{f}
	} else {
		flights = parser.Flights()
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, f := range flights {
		app.writeFlightWarnings(path, f)

		fields := logrus.Fields{
			"flight":         f.Number,
			"samples":        len(f.Samples),
			"valid":          f.Valid(),
			"has_gps":        f.HasGPS(),
			"duration_hours": f.DurationHours(),
		}
		if chtMin, chtMax, ok := f.FieldRange("cht1"); ok {
			fields["cht1_min"] = chtMin
			fields["cht1_max"] = chtMax
		}
		app.logger.WithFields(fields).Info("Decoded flight")

		if f.Empty() {
			continue
		}

		outPath := filepath.Join(app.config.OutDir, fmt.Sprintf("%s_flight%d.csv", base, f.Number))
		if err := app.csvWriter.WriteFile(outPath, f); err != nil {
			app.logger.WithError(err).WithField("flight", f.Number).Error("Failed to write flight CSV")
		}
	}

	return nil
}

// applyAlarmOverride overlays a tail number's profile alarm limits onto
// the limits parsed from the file's own $A record; a zero field in the
// override means "keep the file's own value".
func (app *Application) applyAlarmOverride(md *edm.Metadata, tail string) {
	ov, ok := app.profile.AlarmOverrides[tail]
	if !ok {
		return
	}
	if ov.CHT != 0 {
		md.Alarms.CHT = ov.CHT
	}
	if ov.TIT != 0 {
		md.Alarms.TIT = ov.TIT
	}
	if ov.Oil != 0 {
		md.Alarms.OilHigh = ov.Oil
	}
	app.logger.WithFields(logrus.Fields{"tail_number": tail}).Debug("Applied alarm limit overrides from config profile")
}

func (app *Application) writeFlightWarnings(path string, f *edm.Flight) {
	for _, w := range f.ParseWarnings {
		app.logger.WithFields(logrus.Fields{"file": path, "flight": f.Number}).Warn(w)
	}
}

func parseUnit(s string) edm.TempUnit {
	switch strings.ToLower(s) {
	case "celsius", "c":
		return edm.TempCelsius
	case "fahrenheit", "f":
		return edm.TempFahrenheit
	default:
		return edm.TempOriginal
	}
}

func parseChecksumMode(s string) edm.ChecksumMode {
	if strings.EqualFold(s, "twos_complement") {
		return edm.ChecksumModeTwosComplement
	}
	return edm.ChecksumModeXOR
}

// shutdown closes the log rotator after the run loop has finished.
func (app *Application) shutdown() {
	if app.logRotator != nil {
		if err := app.logRotator.Close(); err != nil {
			app.logger.WithError(err).Error("Failed to close log rotator")
		}
	}

	app.logger.Info("Shutdown completed")
}
