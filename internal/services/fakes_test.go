package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"clubscheduler/internal/domain"
)

var errDB = errors.New("db unavailable")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// captureLogger returns a logger writing JSON lines into the returned builder.
func captureLogger() (*slog.Logger, *strings.Builder) {
	var b strings.Builder
	return slog.New(slog.NewJSONHandler(&b, nil)), &b
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

type idSeq struct{ n int }

func (s *idSeq) next(prefix string) string {
	s.n++
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

// fakeCategoryRepo implements domain.CategoryRepository for tests.
type fakeCategoryRepo struct {
	ids    idSeq
	byID   map[string]*domain.Category
	getErr error
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: make(map[string]*domain.Category)}
}

func (f *fakeCategoryRepo) add(name string, minAge, maxAge int) *domain.Category {
	c := &domain.Category{Name: name, MinAge: minAge, MaxAge: maxAge}
	_ = f.Create(context.Background(), c)
	return c
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	c.ID = f.ids.next("cat")
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	for _, c := range f.byID {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	if _, ok := f.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeRequirementRepo implements domain.CategoryRequirementRepository for tests.
type fakeRequirementRepo struct {
	ids  idSeq
	list []*domain.CategoryRequirement
}

func (f *fakeRequirementRepo) Create(ctx context.Context, r *domain.CategoryRequirement) error {
	for _, existing := range f.list {
		if existing.CategoryID == r.CategoryID && existing.PrerequisiteID == r.PrerequisiteID {
			return domain.ErrRequirementExists
		}
	}
	r.ID = f.ids.next("req")
	f.list = append(f.list, r)
	return nil
}

func (f *fakeRequirementRepo) GetByID(ctx context.Context, id string) (*domain.CategoryRequirement, error) {
	for _, r := range f.list {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRequirementRepo) ListByCategory(ctx context.Context, categoryID string) ([]*domain.CategoryRequirement, error) {
	var out []*domain.CategoryRequirement
	for _, r := range f.list {
		if r.CategoryID == categoryID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequirementRepo) Delete(ctx context.Context, id string) error {
	for i, r := range f.list {
		if r.ID == id {
			f.list = append(f.list[:i], f.list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeUserCategoryRepo implements domain.UserCategoryRepository for tests.
type fakeUserCategoryRepo struct {
	rows map[string]*domain.UserCategory
}

func newFakeUserCategoryRepo() *fakeUserCategoryRepo {
	return &fakeUserCategoryRepo{rows: make(map[string]*domain.UserCategory)}
}

func ucKey(userID, categoryID string) string { return userID + "|" + categoryID }

func (f *fakeUserCategoryRepo) grant(userID, categoryID string, level domain.Level) {
	f.rows[ucKey(userID, categoryID)] = &domain.UserCategory{UserID: userID, CategoryID: categoryID, Level: level}
}

func (f *fakeUserCategoryRepo) Create(ctx context.Context, uc *domain.UserCategory) error {
	if _, ok := f.rows[ucKey(uc.UserID, uc.CategoryID)]; ok {
		return domain.ErrUserAlreadyHasCategory
	}
	cp := *uc
	f.rows[ucKey(uc.UserID, uc.CategoryID)] = &cp
	return nil
}

func (f *fakeUserCategoryRepo) Get(ctx context.Context, userID, categoryID string) (*domain.UserCategory, error) {
	uc, ok := f.rows[ucKey(userID, categoryID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *uc
	return &cp, nil
}

func (f *fakeUserCategoryRepo) ListByUser(ctx context.Context, userID string) ([]*domain.UserCategory, error) {
	var out []*domain.UserCategory
	for _, uc := range f.rows {
		if uc.UserID == userID {
			out = append(out, uc)
		}
	}
	return out, nil
}

func (f *fakeUserCategoryRepo) UpdateLevel(ctx context.Context, userID, categoryID string, level domain.Level) error {
	uc, ok := f.rows[ucKey(userID, categoryID)]
	if !ok {
		return domain.ErrNotFound
	}
	uc.Level = level
	return nil
}

func (f *fakeUserCategoryRepo) Delete(ctx context.Context, userID, categoryID string) error {
	if _, ok := f.rows[ucKey(userID, categoryID)]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rows, ucKey(userID, categoryID))
	return nil
}

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	ids       idSeq
	byID      map[string]*domain.User
	getErr    error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		u.ID = f.ids.next("user")
	}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.Email == email })
}

func (f *fakeUserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.PhoneNumber != "" && u.PhoneNumber == phone })
}

func (f *fakeUserRepo) GetByIdentification(ctx context.Context, number, idType string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool {
		return u.IdentificationNumber == number && u.IdentificationType == idType
	})
}

func (f *fakeUserRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.User, int, error) {
	out := make([]*domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := len(out)
	start := min(p.Offset(), total)
	end := min(start+p.PageSize, total)
	return out[start:end], total, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}

// fakeCourtRepo implements domain.CourtRepository for tests.
type fakeCourtRepo struct {
	ids  idSeq
	byID map[string]*domain.Court
}

func newFakeCourtRepo() *fakeCourtRepo {
	return &fakeCourtRepo{byID: make(map[string]*domain.Court)}
}

func (f *fakeCourtRepo) add(name string) *domain.Court {
	c := &domain.Court{Name: name}
	_ = f.Create(context.Background(), c)
	return c
}

func (f *fakeCourtRepo) Create(ctx context.Context, c *domain.Court) error {
	c.ID = f.ids.next("court")
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCourtRepo) GetByID(ctx context.Context, id string) (*domain.Court, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourtRepo) GetByName(ctx context.Context, name string) (*domain.Court, error) {
	for _, c := range f.byID {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCourtRepo) List(ctx context.Context) ([]*domain.Court, error) {
	out := make([]*domain.Court, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCourtRepo) Update(ctx context.Context, c *domain.Court) error {
	if _, ok := f.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCourtRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeReservationRepo implements domain.CourtReservationRepository for tests.
type fakeReservationRepo struct {
	ids       idSeq
	list      []*domain.CourtReservation
	createErr error
	deleteErr error
	// failCreateAfter makes Create fail once it has succeeded this many times.
	failCreateAfter int
	creates         int
}

func (f *fakeReservationRepo) Create(ctx context.Context, r *domain.CourtReservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.failCreateAfter > 0 && f.creates >= f.failCreateAfter {
		return errDB
	}
	f.creates++
	r.ID = f.ids.next("res")
	cp := *r
	f.list = append(f.list, &cp)
	return nil
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id string) (*domain.CourtReservation, error) {
	for _, r := range f.list {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeReservationRepo) GetByEvent(ctx context.Context, kind domain.EventKind, eventID string) (*domain.CourtReservation, error) {
	for _, r := range f.list {
		link := r.TrainingID
		if kind == domain.EventKindTournament {
			link = r.TournamentID
		}
		if link != nil && *link == eventID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeReservationRepo) ListOverlapping(ctx context.Context, courtID string, window domain.Interval) ([]*domain.CourtReservation, error) {
	var out []*domain.CourtReservation
	for _, r := range f.list {
		if r.CourtID == courtID && domain.Overlaps(r.Window(), window) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) CountByCourt(ctx context.Context, courtID string) (int, error) {
	n := 0
	for _, r := range f.list {
		if r.CourtID == courtID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReservationRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, r := range f.list {
		if r.ID == id {
			f.list = append(f.list[:i], f.list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeTrainingRepo implements domain.TrainingRepository for tests.
type fakeTrainingRepo struct {
	ids       idSeq
	byID      map[string]*domain.Training
	createErr error
	updateErr error
	deleteErr error
}

func newFakeTrainingRepo() *fakeTrainingRepo {
	return &fakeTrainingRepo{byID: make(map[string]*domain.Training)}
}

func (f *fakeTrainingRepo) Create(ctx context.Context, t *domain.Training) error {
	if f.createErr != nil {
		return f.createErr
	}
	t.ID = f.ids.next("training")
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTrainingRepo) GetByID(ctx context.Context, id string) (*domain.Training, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTrainingRepo) List(ctx context.Context) ([]*domain.Training, error) {
	out := make([]*domain.Training, 0, len(f.byID))
	for _, t := range f.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTrainingRepo) ListByTrainer(ctx context.Context, trainerID string) ([]*domain.Training, error) {
	all, _ := f.List(ctx)
	var out []*domain.Training
	for _, t := range all {
		if t.TrainerID == trainerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTrainingRepo) Update(ctx context.Context, t *domain.Training) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTrainingRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeTournamentRepo implements domain.TournamentRepository for tests.
type fakeTournamentRepo struct {
	ids  idSeq
	byID map[string]*domain.Tournament
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{byID: make(map[string]*domain.Tournament)}
}

func (f *fakeTournamentRepo) Create(ctx context.Context, t *domain.Tournament) error {
	t.ID = f.ids.next("tournament")
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTournamentRepo) GetByID(ctx context.Context, id string) (*domain.Tournament, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTournamentRepo) List(ctx context.Context) ([]*domain.Tournament, error) {
	out := make([]*domain.Tournament, 0, len(f.byID))
	for _, t := range f.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTournamentRepo) Update(ctx context.Context, t *domain.Tournament) error {
	if _, ok := f.byID[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTournamentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeTrainingRegRepo implements domain.TrainingRegistrationRepository for tests.
type fakeTrainingRegRepo struct {
	rows map[string]*domain.TrainingRegistration
}

func newFakeTrainingRegRepo() *fakeTrainingRegRepo {
	return &fakeTrainingRegRepo{rows: make(map[string]*domain.TrainingRegistration)}
}

func (f *fakeTrainingRegRepo) Create(ctx context.Context, reg *domain.TrainingRegistration) error {
	k := ucKey(reg.TrainingID, reg.UserID)
	if _, ok := f.rows[k]; ok {
		return domain.ErrUserAlreadyRegistered
	}
	cp := *reg
	f.rows[k] = &cp
	return nil
}

func (f *fakeTrainingRegRepo) Get(ctx context.Context, trainingID, userID string) (*domain.TrainingRegistration, error) {
	r, ok := f.rows[ucKey(trainingID, userID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeTrainingRegRepo) ListByTraining(ctx context.Context, trainingID string) ([]*domain.TrainingRegistration, error) {
	var out []*domain.TrainingRegistration
	for _, r := range f.rows {
		if r.TrainingID == trainingID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTrainingRegRepo) ListByUser(ctx context.Context, userID string) ([]*domain.TrainingRegistration, error) {
	var out []*domain.TrainingRegistration
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTrainingRegRepo) MarkAttendance(ctx context.Context, trainingID, userID string, attended bool, at *time.Time) error {
	r, ok := f.rows[ucKey(trainingID, userID)]
	if !ok {
		return domain.ErrNotFound
	}
	r.Attended = attended
	r.AttendanceDatetime = at
	return nil
}

func (f *fakeTrainingRegRepo) Delete(ctx context.Context, trainingID, userID string) error {
	if _, ok := f.rows[ucKey(trainingID, userID)]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rows, ucKey(trainingID, userID))
	return nil
}

// fakeTournamentRegRepo implements domain.TournamentRegistrationRepository for tests.
type fakeTournamentRegRepo struct {
	rows map[string]*domain.TournamentRegistration
}

func newFakeTournamentRegRepo() *fakeTournamentRegRepo {
	return &fakeTournamentRegRepo{rows: make(map[string]*domain.TournamentRegistration)}
}

func (f *fakeTournamentRegRepo) Create(ctx context.Context, reg *domain.TournamentRegistration) error {
	k := ucKey(reg.TournamentID, reg.UserID)
	if _, ok := f.rows[k]; ok {
		return domain.ErrUserAlreadyRegistered
	}
	cp := *reg
	f.rows[k] = &cp
	return nil
}

func (f *fakeTournamentRegRepo) Get(ctx context.Context, tournamentID, userID string) (*domain.TournamentRegistration, error) {
	r, ok := f.rows[ucKey(tournamentID, userID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeTournamentRegRepo) ListByTournament(ctx context.Context, tournamentID string) ([]*domain.TournamentRegistration, error) {
	var out []*domain.TournamentRegistration
	for _, r := range f.rows {
		if r.TournamentID == tournamentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTournamentRegRepo) ListByUser(ctx context.Context, userID string) ([]*domain.TournamentRegistration, error) {
	var out []*domain.TournamentRegistration
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTournamentRegRepo) Delete(ctx context.Context, tournamentID, userID string) error {
	if _, ok := f.rows[ucKey(tournamentID, userID)]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rows, ucKey(tournamentID, userID))
	return nil
}

// fakeAttendanceRepo implements domain.TournamentAttendanceRepository for tests.
type fakeAttendanceRepo struct {
	rows map[string]*domain.TournamentAttendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[string]*domain.TournamentAttendance)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a *domain.TournamentAttendance) error {
	cp := *a
	f.rows[ucKey(a.TournamentID, a.UserID)] = &cp
	return nil
}

func (f *fakeAttendanceRepo) Get(ctx context.Context, tournamentID, userID string) (*domain.TournamentAttendance, error) {
	a, ok := f.rows[ucKey(tournamentID, userID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttendanceRepo) GetByPosition(ctx context.Context, tournamentID string, position int) (*domain.TournamentAttendance, error) {
	for _, a := range f.rows {
		if a.TournamentID == tournamentID && a.Position == position {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAttendanceRepo) ListByTournament(ctx context.Context, tournamentID string) ([]*domain.TournamentAttendance, error) {
	var out []*domain.TournamentAttendance
	for _, a := range f.rows {
		if a.TournamentID == tournamentID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeAttendanceRepo) UpdatePosition(ctx context.Context, tournamentID, userID string, position int) error {
	a, ok := f.rows[ucKey(tournamentID, userID)]
	if !ok {
		return domain.ErrNotFound
	}
	a.Position = position
	return nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, tournamentID, userID string) error {
	if _, ok := f.rows[ucKey(tournamentID, userID)]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rows, ucKey(tournamentID, userID))
	return nil
}

// fakeTuitionRepo implements domain.TuitionRepository for tests.
type fakeTuitionRepo struct {
	ids  idSeq
	list []*domain.Tuition
}

func (f *fakeTuitionRepo) Create(ctx context.Context, t *domain.Tuition) error {
	t.ID = f.ids.next("tuition")
	cp := *t
	f.list = append(f.list, &cp)
	return nil
}

func (f *fakeTuitionRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Tuition, error) {
	var out []*domain.Tuition
	for _, t := range f.list {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTuitionRepo) ListPaidSince(ctx context.Context, userID string, since time.Time) ([]*domain.Tuition, error) {
	var out []*domain.Tuition
	for _, t := range f.list {
		if t.UserID == userID && !t.PaymentDate.Before(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTuitionRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Tuition, int, error) {
	total := len(f.list)
	start := min(p.Offset(), total)
	end := min(start+p.PageSize, total)
	return f.list[start:end], total, nil
}

// fakeTuitionChecker implements domain.TuitionChecker for tests.
type fakeTuitionChecker struct {
	ok  bool
	err error
}

func (f *fakeTuitionChecker) HasActiveTuitionAtLeast(ctx context.Context, userID string, amount int64) (bool, error) {
	return f.ok, f.err
}

// fakeRequestRepo implements domain.RequestRepository for tests.
type fakeRequestRepo struct {
	ids  idSeq
	byID map[string]*domain.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{byID: make(map[string]*domain.Request)}
}

func (f *fakeRequestRepo) Create(ctx context.Context, r *domain.Request) error {
	r.ID = f.ids.next("request")
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequestRepo) List(ctx context.Context) ([]*domain.Request, error) {
	out := make([]*domain.Request, 0, len(f.byID))
	for _, r := range f.byID {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByRequester(ctx context.Context, userID string) ([]*domain.Request, error) {
	var out []*domain.Request
	for _, r := range f.byID {
		if r.RequesterID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) Complete(ctx context.Context, r *domain.Request) error {
	stored, ok := f.byID[r.ID]
	if !ok || stored.Completed() {
		return domain.ErrNotFound
	}
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

// fakePublisher records published topics.
type fakePublisher struct {
	mu     sync.Mutex
	topics []string
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	return f.err
}

func (f *fakePublisher) count(topic string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.topics {
		if t == topic {
			n++
		}
	}
	return n
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	welcome       []*domain.WelcomeMessageEmailData
	registrations []*domain.RegistrationEmailData
	err           error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.welcome = append(f.welcome, data)
	return f.err
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	f.registrations = append(f.registrations, data)
	return f.err
}

// fakeLocker implements domain.Locker for tests.
type fakeLocker struct {
	acquireErr error
	acquired   []string
	released   int
}

func (f *fakeLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	if f.acquireErr != nil {
		return nil, f.acquireErr
	}
	f.acquired = append(f.acquired, key)
	return func(context.Context) error {
		f.released++
		return nil
	}, nil
}
