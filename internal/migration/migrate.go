package migration

import (
	"fmt"
	"os"

	"github.com/damoang/angple-press/internal/domain"
	"github.com/damoang/angple-press/internal/slug"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Run creates all tables via AutoMigrate. Safe to run multiple times.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Tag{},
		&domain.Post{},
		&domain.PostCategory{},
		&domain.PostTag{},
		&domain.Comment{},
	)
}

// SeedFile is the reference data file layout
type SeedFile struct {
	Categories []SeedCategory `yaml:"categories"`
	Tags       []SeedTag      `yaml:"tags"`
}

// SeedCategory one category entry
type SeedCategory struct {
	Name     string `yaml:"name"`
	Slug     string `yaml:"slug"`
	IsActive *bool  `yaml:"is_active"`
}

// SeedTag one tag entry
type SeedTag struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

// LoadSeedFile parses a YAML seed file
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &seed, nil
}

// Seed inserts categories and tags that do not exist yet (matched by slug).
// Missing slugs are derived from names.
func Seed(db *gorm.DB, seed *SeedFile) (int, error) {
	inserted := 0
	for _, sc := range seed.Categories {
		active := true
		if sc.IsActive != nil {
			active = *sc.IsActive
		}
		c := domain.Category{Name: sc.Name, Slug: orSlug(sc.Slug, sc.Name), IsActive: active}
		res := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).Create(&c)
		if res.Error != nil {
			return inserted, fmt.Errorf("seed category %q: %w", c.Slug, res.Error)
		}
		inserted += int(res.RowsAffected)
	}
	for _, st := range seed.Tags {
		t := domain.Tag{Name: st.Name, Slug: orSlug(st.Slug, st.Name)}
		res := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).Create(&t)
		if res.Error != nil {
			return inserted, fmt.Errorf("seed tag %q: %w", t.Slug, res.Error)
		}
		inserted += int(res.RowsAffected)
	}
	return inserted, nil
}

func orSlug(s, name string) string {
	if s != "" {
		return s
	}
	return slug.Slugify(name)
}
