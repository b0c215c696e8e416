package types

import (
	"github.com/killallgit/interviewcut/internal/database"
	"github.com/killallgit/interviewcut/internal/questions"
	"github.com/killallgit/interviewcut/internal/services/history"
	"github.com/killallgit/interviewcut/internal/services/jobs"
	"github.com/killallgit/interviewcut/internal/services/sessions"
	"github.com/killallgit/interviewcut/internal/services/workers"
	"github.com/killallgit/interviewcut/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"commit"`
	BuildTime string `json:"buildTime"`
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	Build      BuildInfo
	DB         *database.DB
	Config     *config.Config
	Fs         afero.Fs
	Logger     logrus.FieldLogger
	Sessions   *sessions.Registry
	JobService jobs.Service
	WorkerPool *workers.WorkerPool
	History    *history.Service
	Questions  *questions.Catalog
}

// FS returns the configured filesystem, defaulting to the OS
func (d *Dependencies) FS() afero.Fs {
	if d == nil || d.Fs == nil {
		return afero.NewOsFs()
	}
	return d.Fs
}
