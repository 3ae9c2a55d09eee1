package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// seedCategory describes one demo category row.
type seedCategory struct {
	name        string
	slug        string
	description string
	parentSlug  string // empty = root
	sortOrder   int
}

// demoCategories is the development category tree inserted by Seed.
var demoCategories = []seedCategory{
	{"Technology", "technology", "A comprehensive collection of technology content, articles, and resources.", "", 0},
	{"Programming", "programming", "Discover programming content in our technology section, covering articles, guides, and resources.", "technology", 0},
	{"Hardware", "hardware", "Discover hardware content in our technology section, covering articles, guides, and resources.", "technology", 1},
	{"Business", "business", "A comprehensive collection of business content, articles, and resources.", "", 1},
	{"Lifestyle", "lifestyle", "A comprehensive collection of lifestyle content, articles, and resources.", "", 2},
}

// demoPosts maps post titles to the category slug they belong to.
var demoPosts = []struct {
	title        string
	slug         string
	categorySlug string
}{
	{"Getting Started with Go", "getting-started-with-go", "programming"},
	{"Choosing a Mechanical Keyboard", "choosing-a-mechanical-keyboard", "hardware"},
	{"Quarterly Planning Basics", "quarterly-planning-basics", "business"},
}

// Seed populates the database with initial development data: a default
// admin user, a small category tree, and a few posts so category post
// counts are non-zero. It is a no-op if users already exist.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin user. 2FA is not enabled — they may enroll via
	// the auth API.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@jacms.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Insert the demo category tree. Parents are listed before children so
	// the parent lookup always succeeds.
	for _, c := range demoCategories {
		var parentID *string
		if c.parentSlug != "" {
			var id string
			if err := db.QueryRow(`SELECT id FROM categories WHERE slug = $1`, c.parentSlug).Scan(&id); err != nil {
				return fmt.Errorf("seed lookup parent %q: %w", c.parentSlug, err)
			}
			parentID = &id
		}

		metaTitle := c.name
		_, err := db.Exec(`
			INSERT INTO categories (name, slug, description, parent_id, sort_order, meta_title, meta_description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, c.name, c.slug, c.description, parentID, c.sortOrder, metaTitle, c.description)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.slug, err)
		}
	}

	for _, p := range demoPosts {
		_, err := db.Exec(`
			INSERT INTO posts (title, slug, category_id, published)
			VALUES ($1, $2, (SELECT id FROM categories WHERE slug = $3), TRUE)
		`, p.title, p.slug, p.categorySlug)
		if err != nil {
			return fmt.Errorf("seed insert post %q: %w", p.slug, err)
		}
	}

	slog.Info("database seeded with demo data",
		"email", "admin@jacms.local",
		"password", "admin",
		"categories", len(demoCategories),
		"posts", len(demoPosts),
	)

	return nil
}
