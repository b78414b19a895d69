package application

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/upkeepdev/upkeep/internal/domain"
)

// ScaffoldService creates new project skeletons.
type ScaffoldService struct {
	scaffolder domain.Scaffolder
	git        domain.GitInfo
	logger     zerolog.Logger
}

func NewScaffoldService(scaffolder domain.Scaffolder, git domain.GitInfo, logger zerolog.Logger) *ScaffoldService {
	return &ScaffoldService{
		scaffolder: scaffolder,
		git:        git,
		logger:     logger.With().Str("component", "scaffold").Logger(),
	}
}

// Create writes the skeleton for req and returns the created files. A git
// init failure is logged and does not undo the scaffold.
func (s *ScaffoldService) Create(req domain.ScaffoldRequest) ([]string, error) {
	if _, ok := domain.SpecFor(req.Ecosystem); !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEcosystem, req.Ecosystem)
	}

	files, err := s.scaffolder.Scaffold(req)
	if err != nil {
		return nil, err
	}

	if req.InitGit {
		if gitErr := s.git.Init(req.TargetDir); gitErr != nil {
			s.logger.Warn().Err(gitErr).Str("dir", req.TargetDir).Msg("git init failed")
		}
	}

	s.logger.Debug().
		Str("ecosystem", string(req.Ecosystem)).
		Str("dir", req.TargetDir).
		Int("files", len(files)).
		Msg("project created")
	return files, nil
}
