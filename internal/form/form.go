// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package form implements the category create/edit form controller. It
// owns the form state, keeps the derived fields (slug, description, SEO
// metadata) in sync with their upstream inputs, runs the advisory
// slug-availability check, and drives submit and delete against the API.
//
// The controller talks to the outside world through three small
// interfaces (Navigator, Notifier, Prompter) so it can be driven and
// asserted in tests without any UI.
package form

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"jacms/internal/client"
	"jacms/internal/models"
	"jacms/internal/slug"
	"jacms/internal/taxonomy"
)

// State is the controller's lifecycle state.
type State int

const (
	StateLoading State = iota
	StateReady
	StateSubmitting
	StateSuccess
	StateError
)

// String returns the state name for logging and test failures.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Navigator abstracts page navigation.
type Navigator interface {
	// RedirectToLogin is invoked on any authentication failure. Auth
	// errors never surface as inline form errors.
	RedirectToLogin()
	// NavigateToList leaves the form for the category list after a
	// successful submit or delete.
	NavigateToList()
}

// Notifier abstracts toast-style notifications.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Prompter abstracts interactive confirmation dialogs.
type Prompter interface {
	Confirm(msg string) bool
}

// Fields holds the editable form values. ParentID is the raw select value
// where "" means "no parent".
type Fields struct {
	Name            string
	Slug            string
	Description     string
	ParentID        string
	IsActive        bool
	SortOrder       int
	MetaTitle       string
	MetaDescription string
}

// CategoryForm orchestrates the category create/edit form.
type CategoryForm struct {
	api    *client.Client
	nav    Navigator
	notify Notifier
	prompt Prompter

	categoryID uuid.UUID // zero in create mode
	editMode   bool

	mu              sync.Mutex
	state           State
	loadingCategory bool
	loadingParents  bool
	isDeleting      bool
	fields          Fields
	parents         []models.Category
}

// NewCreate builds a controller for the create form.
func NewCreate(api *client.Client, nav Navigator, notify Notifier, prompt Prompter) *CategoryForm {
	return &CategoryForm{
		api:    api,
		nav:    nav,
		notify: notify,
		prompt: prompt,
		state:  StateLoading,
		fields: Fields{IsActive: true},
	}
}

// NewEdit builds a controller for the edit form of an existing category.
func NewEdit(api *client.Client, nav Navigator, notify Notifier, prompt Prompter, id uuid.UUID) *CategoryForm {
	f := NewCreate(api, nav, notify, prompt)
	f.categoryID = id
	f.editMode = true
	return f
}

// State returns the controller's current lifecycle state.
func (f *CategoryForm) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// IsDeleting reports whether a delete request is in flight.
func (f *CategoryForm) IsDeleting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isDeleting
}

// Fields returns a copy of the current form values.
func (f *CategoryForm) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// ParentCandidates returns the categories offered in the parent dropdown.
func (f *CategoryForm) ParentCandidates() []models.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.parents
}

// Load fetches the form's initial data. In edit mode the category and the
// parent-candidate list load concurrently; each gates its own loading flag
// and completion order is not significant. Any 401 redirects to login.
func (f *CategoryForm) Load(ctx context.Context) {
	f.mu.Lock()
	f.state = StateLoading
	f.loadingParents = true
	f.loadingCategory = f.editMode
	f.mu.Unlock()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		f.loadParents(ctx)
	}()

	if f.editMode {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.loadCategory(ctx)
		}()
	}

	wg.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateLoading {
		f.state = StateReady
	}
}

// loadParents fetches the parent-candidate list and, in edit mode,
// filters out the category itself and its direct children.
func (f *CategoryForm) loadParents(ctx context.Context) {
	defer func() {
		f.mu.Lock()
		f.loadingParents = false
		f.mu.Unlock()
	}()

	parents, err := f.api.ParentCandidates(ctx)
	if err != nil {
		if err == client.ErrUnauthorized {
			f.nav.RedirectToLogin()
			f.setState(StateError)
			return
		}
		// The form still works without a parent dropdown.
		f.notify.Error("Failed to load parent categories.")
		return
	}

	if f.editMode {
		parents = taxonomy.FilterParentCandidates(parents, f.categoryID)
	}

	f.mu.Lock()
	f.parents = parents
	f.mu.Unlock()
}

// loadCategory fetches the category under edit and populates the form
// fields verbatim, applying the documented defaults for absent values.
func (f *CategoryForm) loadCategory(ctx context.Context) {
	defer func() {
		f.mu.Lock()
		f.loadingCategory = false
		f.mu.Unlock()
	}()

	cat, err := f.api.Category(ctx, f.categoryID)
	if err != nil {
		if err == client.ErrUnauthorized {
			f.nav.RedirectToLogin()
		} else {
			f.notify.Error("Failed to load category.")
		}
		f.setState(StateError)
		return
	}

	parentID := ""
	if cat.ParentID != nil {
		parentID = cat.ParentID.String()
	}

	f.mu.Lock()
	f.fields = Fields{
		Name:            cat.Name,
		Slug:            cat.Slug,
		Description:     cat.Description,
		ParentID:        parentID,
		IsActive:        cat.IsActive,
		SortOrder:       cat.SortOrder,
		MetaTitle:       cat.MetaTitle,
		MetaDescription: cat.MetaDescription,
	}
	f.mu.Unlock()
}

// SetName updates the name and regenerates every derived field: slug,
// description, meta title, and meta description. Derivation is
// unconditional — manual edits to the derived fields are overwritten
// whenever the name changes again.
func (f *CategoryForm) SetName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviveLocked()

	f.fields.Name = name
	f.fields.Slug = slug.Generate(name)
	parentName := f.parentNameLocked()
	f.fields.Description = taxonomy.GenerateDescription(name, parentName)
	f.fields.MetaTitle = taxonomy.GenerateMetaTitle(name, parentName)
	f.fields.MetaDescription = taxonomy.GenerateMetaDescription(f.fields.Description, name)
}

// SetParentID updates the selected parent and regenerates description and
// SEO metadata. The slug is name-derived only and is left alone.
func (f *CategoryForm) SetParentID(parentID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviveLocked()

	f.fields.ParentID = parentID
	parentName := f.parentNameLocked()
	f.fields.Description = taxonomy.GenerateDescription(f.fields.Name, parentName)
	f.fields.MetaTitle = taxonomy.GenerateMetaTitle(f.fields.Name, parentName)
	f.fields.MetaDescription = taxonomy.GenerateMetaDescription(f.fields.Description, f.fields.Name)
}

// SetDescription updates the description and regenerates the meta
// description, its one downstream derived field.
func (f *CategoryForm) SetDescription(description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviveLocked()

	f.fields.Description = description
	f.fields.MetaDescription = taxonomy.GenerateMetaDescription(description, f.fields.Name)
}

// SetSlug sets the slug directly (user override of the generated value).
func (f *CategoryForm) SetSlug(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviveLocked()
	f.fields.Slug = s
}

// SetMetaTitle sets the meta title verbatim. The edit sticks only until
// the name or parent changes again.
func (f *CategoryForm) SetMetaTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviveLocked()
	f.fields.MetaTitle = title
}

// SetMetaDescription sets the meta description verbatim. The edit sticks
// only until an upstream field changes again.
func (f *CategoryForm) SetMetaDescription(desc string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviveLocked()
	f.fields.MetaDescription = desc
}

// SetIsActive toggles the active flag.
func (f *CategoryForm) SetIsActive(active bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviveLocked()
	f.fields.IsActive = active
}

// SetSortOrder sets the sort position.
func (f *CategoryForm) SetSortOrder(order int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviveLocked()
	f.fields.SortOrder = order
}

// reviveLocked returns the form to the ready state after a failed submit
// so the user can edit and retry. Callers hold f.mu.
func (f *CategoryForm) reviveLocked() {
	if f.state == StateError {
		f.state = StateReady
	}
}

// parentNameLocked resolves the selected parent's name from the fetched
// candidate list. Callers hold f.mu.
func (f *CategoryForm) parentNameLocked() string {
	if f.fields.ParentID == "" {
		return ""
	}
	for _, p := range f.parents {
		if p.ID.String() == f.fields.ParentID {
			return p.Name
		}
	}
	return ""
}

// Submit validates the form and sends the create or update request. On a
// taken slug — caught by the advisory check or by the server's uniqueness
// constraint — the user is offered a timestamp-disambiguated slug instead
// of looping on the same conflict.
func (f *CategoryForm) Submit(ctx context.Context) {
	fields := f.Fields()

	name := strings.TrimSpace(fields.Name)
	if name == "" {
		f.notify.Error("Name is required.")
		return
	}

	slugValue := strings.TrimSpace(fields.Slug)
	if !f.editMode {
		if slugValue == "" {
			f.notify.Error("Slug is required.")
			return
		}

		taken, err := f.api.SlugTaken(ctx, slugValue)
		if err == client.ErrUnauthorized {
			f.nav.RedirectToLogin()
			return
		}
		if taken {
			regenerated := slug.WithTimestamp(slugValue)
			if !f.prompt.Confirm(fmt.Sprintf("The slug %q is already taken. Use %q instead?", slugValue, regenerated)) {
				return
			}
			slugValue = regenerated
			f.SetSlug(regenerated)
		}
	}

	f.setState(StateSubmitting)

	body := f.buildBody(name, slugValue, &fields)

	var err error
	if f.editMode {
		_, err = f.api.UpdateCategory(ctx, f.categoryID, body)
	} else {
		_, err = f.api.CreateCategory(ctx, body)
	}

	if err != nil {
		f.handleSubmitError(ctx, err, body)
		return
	}

	f.setState(StateSuccess)
	if f.editMode {
		f.notify.Success("Category updated.")
	} else {
		f.notify.Success("Category created.")
	}
	f.nav.NavigateToList()
}

// handleSubmitError maps a failed submit to the documented recovery paths:
// 401 redirects, slug conflicts offer a regenerated slug and one retry,
// everything else surfaces as a toast with the form left editable.
func (f *CategoryForm) handleSubmitError(ctx context.Context, err error, body *client.CategoryBody) {
	switch {
	case err == client.ErrUnauthorized:
		f.setState(StateError)
		f.nav.RedirectToLogin()

	case err == client.ErrSlugTaken:
		// The advisory check passed but another client won the race.
		regenerated := slug.WithTimestamp(body.Slug)
		if !f.prompt.Confirm(fmt.Sprintf("The slug %q is already taken. Use %q instead?", body.Slug, regenerated)) {
			f.setState(StateError)
			return
		}
		f.SetSlug(regenerated)
		body.Slug = regenerated

		var retryErr error
		if f.editMode {
			_, retryErr = f.api.UpdateCategory(ctx, f.categoryID, body)
		} else {
			_, retryErr = f.api.CreateCategory(ctx, body)
		}
		if retryErr != nil {
			f.setState(StateError)
			f.notify.Error(retryErr.Error())
			return
		}
		f.setState(StateSuccess)
		f.notify.Success("Category saved.")
		f.nav.NavigateToList()

	default:
		f.setState(StateError)
		f.notify.Error(errMessage(err))
	}
}

// Delete asks for confirmation and removes the category. Only meaningful
// in edit mode.
func (f *CategoryForm) Delete(ctx context.Context) {
	if !f.editMode {
		return
	}

	name := f.Fields().Name
	if !f.prompt.Confirm(fmt.Sprintf("Delete category %q? Its subcategories become root categories.", name)) {
		return
	}

	f.mu.Lock()
	f.isDeleting = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.isDeleting = false
		f.mu.Unlock()
	}()

	err := f.api.DeleteCategory(ctx, f.categoryID)
	if err != nil {
		if err == client.ErrUnauthorized {
			f.nav.RedirectToLogin()
			return
		}
		f.notify.Error(errMessage(err))
		return
	}

	f.notify.Success("Category deleted.")
	f.nav.NavigateToList()
}

// buildBody assembles the request payload with the documented
// normalizations: trimmed name, empty description as null, empty parent
// as null, meta fields falling back to name/description.
func (f *CategoryForm) buildBody(name, slugValue string, fields *Fields) *client.CategoryBody {
	body := &client.CategoryBody{
		Name:      name,
		Slug:      slugValue,
		IsActive:  fields.IsActive,
		SortOrder: fields.SortOrder,
	}

	description := strings.TrimSpace(fields.Description)
	if description != "" {
		body.Description = &description
	}

	if fields.ParentID != "" {
		if id, err := uuid.Parse(fields.ParentID); err == nil {
			body.ParentID = &id
		}
	}

	body.MetaTitle = strings.TrimSpace(fields.MetaTitle)
	if body.MetaTitle == "" {
		body.MetaTitle = name
	}

	metaDescription := strings.TrimSpace(fields.MetaDescription)
	if metaDescription == "" {
		metaDescription = description
	}
	if metaDescription != "" {
		body.MetaDescription = &metaDescription
	}

	return body
}

// setState transitions the lifecycle state.
func (f *CategoryForm) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// errMessage returns the server-provided message where available, else a
// generic fallback.
func errMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "Something went wrong. Please try again."
	}
	return err.Error()
}
