package domain

import "go.trai.ch/zerr"

var (
	// ErrLoadFailed is returned to every caller waiting on a cache entry whose loader failed.
	ErrLoadFailed = zerr.New("cache load failed")

	// ErrLoaderPanicked is recorded for a cache entry whose loader panicked.
	ErrLoaderPanicked = zerr.New("cache loader panicked")

	// ErrInterruptedWait is returned when a caller stops waiting for an in-flight load
	// because its context was cancelled. The value is not available.
	ErrInterruptedWait = zerr.New("interrupted while waiting for in-flight load")

	// ErrDoubleRelease is returned when an item that is already idle is released again.
	ErrDoubleRelease = zerr.New("item released twice")

	// ErrConstructionFailed is returned when the execution factory cannot build an execution.
	ErrConstructionFailed = zerr.New("failed to construct execution")

	// ErrIdentityMismatch is returned when an execution is released under a different identity.
	ErrIdentityMismatch = zerr.New("execution released under a different identity")

	// ErrProjectNotFound is returned when a project file does not exist.
	ErrProjectNotFound = zerr.New("project file not found")

	// ErrProjectReadFailed is returned when a project file cannot be read from disk.
	ErrProjectReadFailed = zerr.New("failed to read project file")

	// ErrProjectParseFailed is returned when a project file cannot be parsed.
	ErrProjectParseFailed = zerr.New("failed to parse project file")

	// ErrInvalidProject is returned when a project file is missing required fields.
	ErrInvalidProject = zerr.New("invalid project")

	// ErrCycleDetected is returned when a project is its own ancestor.
	ErrCycleDetected = zerr.New("cycle detected in project parents")

	// ErrPluginNotFound is returned when a project references a plugin missing from the catalogue.
	ErrPluginNotFound = zerr.New("plugin not found in catalogue")

	// ErrPluginVersionNotFound is returned when no catalogue version satisfies the requested version.
	ErrPluginVersionNotFound = zerr.New("no plugin version satisfies the requested version")

	// ErrGoalNotFound is returned when a plugin does not define the requested goal.
	ErrGoalNotFound = zerr.New("goal not found")

	// ErrInvalidGoalPattern is returned when the goal filter cannot be compiled.
	ErrInvalidGoalPattern = zerr.New("invalid goal pattern")

	// ErrNoProjectsSpecified is returned when generate is called without project paths.
	ErrNoProjectsSpecified = zerr.New("no projects specified")

	// ErrGenerationFailed is returned when one or more steps of a generation run fail.
	ErrGenerationFailed = zerr.New("generation failed")

	// ErrStepExecutionFailed is returned when a goal command exits unsuccessfully.
	ErrStepExecutionFailed = zerr.New("step execution failed")

	// ErrConfigNotFound is returned when the workspace configuration file does not exist.
	ErrConfigNotFound = zerr.New("configuration file not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the config file fails validation.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrStoreReadFailed is returned when the record store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read generation records")

	// ErrStoreWriteFailed is returned when the record store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write generation records")
)
