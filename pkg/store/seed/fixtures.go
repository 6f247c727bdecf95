package seed

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/*.yaml
var fixtureFS embed.FS

// userFixture is one row of fixtures/users.yaml.
type userFixture struct {
	ID    int64    `yaml:"id"`
	Roles []string `yaml:"roles"`
}

// queueFixture is one row of fixtures/queues.yaml.
type queueFixture struct {
	OwnerID     int64  `yaml:"owner_id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// beatmapsetFixture is one row of fixtures/beatmapsets.yaml.
type beatmapsetFixture struct {
	ID        int64  `yaml:"id"`
	CreatorID int64  `yaml:"creator_id"`
	Title     string `yaml:"title"`
	Artist    string `yaml:"artist"`
}

// requestFixture is one row of fixtures/requests.yaml. Queues are referenced
// by name and resolved at insert time.
type requestFixture struct {
	UserID       int64  `yaml:"user_id"`
	Queue        string `yaml:"queue"`
	BeatmapsetID int64  `yaml:"beatmapset_id"`
	Comment      string `yaml:"comment"`
	Status       string `yaml:"status"`
}

func loadFixtures[T any](name string) ([]T, error) {
	raw, err := fixtureFS.ReadFile("fixtures/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", name, err)
	}

	var items []T
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", name, err)
	}

	return items, nil
}
