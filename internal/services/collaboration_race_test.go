package services

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yukikurage/collab-projects-api/internal/models"
)

// ConcurrentAcceptTestSuite runs accepts from parallel goroutines against a
// file-backed database so each transaction gets its own connection
type ConcurrentAcceptTestSuite struct {
	serviceSuite
}

func (s *ConcurrentAcceptTestSuite) SetupTest() {
	s.dsn = filepath.Join(s.T().TempDir(), "collab.db") + "?_txlock=immediate&_busy_timeout=5000"
	s.serviceSuite.SetupTest()
}

func (s *ConcurrentAcceptTestSuite) TestLastVacancyGoesToExactlyOneRequest() {
	creator := s.createUser("creator@example.com")
	project := s.createProject(creator.ID, 2)

	first := s.createUser("first@example.com")
	seated, err := s.request(project.ID, first.ID)
	s.Require().NoError(err)
	_, err = s.collaborations.AcceptCollaboration(seated.ID, creator.ID, "")
	s.Require().NoError(err)

	const racers = 4
	pending := make([]uint64, racers)
	for i := range pending {
		user := s.createUser("racer" + string(rune('a'+i)) + "@example.com")
		collab, err := s.request(project.ID, user.ID)
		s.Require().NoError(err)
		pending[i] = collab.ID
	}

	start := make(chan struct{})
	errs := make([]error, racers)
	var wg sync.WaitGroup
	for i, id := range pending {
		wg.Add(1)
		go func(i int, id uint64) {
			defer wg.Done()
			<-start
			_, errs[i] = s.collaborations.AcceptCollaboration(id, creator.ID, "")
		}(i, id)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.requireValidation(err, "project", ErrNoVacancy)
	}
	s.Equal(1, succeeded)
	s.Equal(int64(2), s.countAccepted(project.ID))

	var stillPending int64
	s.Require().NoError(s.db.Model(&models.Collaboration{}).
		Where("project_id = ? AND state = ?", project.ID, models.CollaborationPending).
		Count(&stillPending).Error)
	s.Equal(int64(racers-1), stillPending)
}

func TestConcurrentAcceptTestSuite(t *testing.T) {
	suite.Run(t, new(ConcurrentAcceptTestSuite))
}
