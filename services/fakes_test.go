package services

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffly/models"
	"staffly/pkg/realtime"
	"staffly/repository"
)

type fakeEmployees struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.Employee
}

func newFakeEmployees(emps ...*models.Employee) *fakeEmployees {
	f := &fakeEmployees{byID: map[primitive.ObjectID]*models.Employee{}}
	for _, e := range emps {
		if e.ID.IsZero() {
			e.ID = primitive.NewObjectID()
		}
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEmployees) Create(_ context.Context, emp *models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.byID {
		if e.Email == emp.Email {
			return repository.ErrDuplicateKey
		}
	}
	emp.ID = primitive.NewObjectID()
	cp := *emp
	f.byID[emp.ID] = &cp
	return nil
}

func (f *fakeEmployees) FindByID(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeEmployees) FindByEmail(_ context.Context, email string) (*models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.byID {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployees) FindByCompany(_ context.Context, companyID primitive.ObjectID, role string) ([]models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Employee{}
	for _, e := range f.byID {
		if e.CompanyID == companyID && (role == "" || e.Role == role) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeEmployees) CountActive(ctx context.Context, companyID primitive.ObjectID, role string) (int64, error) {
	emps, _ := f.FindByCompany(ctx, companyID, role)
	var n int64
	for _, e := range emps {
		if e.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeEmployees) Update(_ context.Context, emp *models.Employee) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[emp.ID]
	if !ok || cur.CompanyID != emp.CompanyID {
		return false, nil
	}
	for id, e := range f.byID {
		if id != emp.ID && e.Email == emp.Email {
			return false, repository.ErrDuplicateKey
		}
	}
	cp := *emp
	f.byID[emp.ID] = &cp
	return true, nil
}

func (f *fakeEmployees) Delete(_ context.Context, companyID, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok || e.CompanyID != companyID {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeEmployees) ClearManager(_ context.Context, companyID, managerID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.byID {
		if e.CompanyID == companyID && e.ReportsTo != nil && *e.ReportsTo == managerID {
			e.ReportsTo = nil
		}
	}
	return nil
}

func (f *fakeEmployees) CountByDepartment(ctx context.Context, companyID primitive.ObjectID) ([]models.DepartmentCount, error) {
	emps, _ := f.FindByCompany(ctx, companyID, "")
	counts := map[string]int64{}
	for _, e := range emps {
		if e.IsActive {
			counts[e.Department]++
		}
	}
	out := []models.DepartmentCount{}
	for d, n := range counts {
		out = append(out, models.DepartmentCount{Department: d, Count: n})
	}
	return out, nil
}

func (f *fakeEmployees) MoveDepartment(_ context.Context, companyID primitive.ObjectID, from, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.byID {
		if e.CompanyID == companyID && e.Department == from {
			e.Department = to
		}
	}
	return nil
}

type fakeAttendance struct {
	mu      sync.Mutex
	records []*models.Attendance
}

func (f *fakeAttendance) Insert(_ context.Context, a *models.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.EmployeeID == a.EmployeeID && r.Date.Equal(a.Date) {
			return repository.ErrDuplicateKey
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	cp := *a
	f.records = append(f.records, &cp)
	return nil
}

func (f *fakeAttendance) FindByEmployeeAndDate(_ context.Context, employeeID primitive.ObjectID, date time.Time) (*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendance) CloseOut(_ context.Context, id primitive.ObjectID, checkOut time.Time, workDuration float64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id && r.CheckInTime != nil && r.CheckOutTime == nil {
			r.CheckOutTime = &checkOut
			r.WorkDuration = workDuration
			r.UpdatedAt = checkOut
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendance) CheckInOverAbsent(_ context.Context, id primitive.ObjectID, checkIn time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id && r.Status == models.AttendanceAbsent && r.CheckInTime == nil {
			r.CheckInTime = &checkIn
			r.Status = models.AttendancePresent
			r.Note = ""
			r.UpdatedAt = checkIn
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendance) ListByEmployee(_ context.Context, employeeID primitive.ObjectID) ([]models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Attendance{}
	for _, r := range f.records {
		if r.EmployeeID == employeeID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeAttendance) ListByCompany(_ context.Context, companyID primitive.ObjectID) ([]models.AttendanceWithEmployee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.AttendanceWithEmployee{}
	for _, r := range f.records {
		if r.CompanyID == companyID {
			out = append(out, models.AttendanceWithEmployee{Attendance: *r})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeAttendance) CountCheckedIn(_ context.Context, companyID primitive.ObjectID, date time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.records {
		if r.CompanyID == companyID && r.Date.Equal(date) && r.CheckInTime != nil {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttendance) RecentForDate(_ context.Context, companyID primitive.ObjectID, date time.Time, limit int64) ([]models.AttendanceWithEmployee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.AttendanceWithEmployee{}
	for _, r := range f.records {
		if r.CompanyID == companyID && r.Date.Equal(date) {
			out = append(out, models.AttendanceWithEmployee{Attendance: *r})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeLeaves struct {
	mu       sync.Mutex
	requests []*models.LeaveRequest
}

func (f *fakeLeaves) Create(_ context.Context, req *models.LeaveRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req.ID = primitive.NewObjectID()
	cp := *req
	f.requests = append(f.requests, &cp)
	return nil
}

func (f *fakeLeaves) FindByID(_ context.Context, id primitive.ObjectID) (*models.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeLeaves) TransitionStatus(_ context.Context, id primitive.ObjectID, from, to string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.ID == id && r.Status == from {
			r.Status = to
			r.UpdatedAt = at
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaves) ListByEmployee(_ context.Context, employeeID primitive.ObjectID) ([]models.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.LeaveRequest{}
	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].EmployeeID == employeeID {
			out = append(out, *f.requests[i])
		}
	}
	return out, nil
}

func (f *fakeLeaves) ListByCompany(_ context.Context, companyID primitive.ObjectID) ([]models.LeaveRequestWithEmployee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.LeaveRequestWithEmployee{}
	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].CompanyID == companyID {
			out = append(out, models.LeaveRequestWithEmployee{LeaveRequest: *f.requests[i]})
		}
	}
	return out, nil
}

func (f *fakeLeaves) ApprovedStartingIn(_ context.Context, employeeID primitive.ObjectID, start, end time.Time) ([]models.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.LeaveRequest{}
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Status == models.LeaveApproved &&
			!r.FromDate.Before(start) && r.FromDate.Before(end) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLeaves) EmployeesOnLeave(_ context.Context, companyID primitive.ObjectID, day time.Time) ([]primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[primitive.ObjectID]bool{}
	out := []primitive.ObjectID{}
	for _, r := range f.requests {
		if r.CompanyID == companyID && r.Status == models.LeaveApproved &&
			!r.FromDate.After(day) && !r.ToDate.Before(day) && !seen[r.EmployeeID] {
			seen[r.EmployeeID] = true
			out = append(out, r.EmployeeID)
		}
	}
	return out, nil
}

func (f *fakeLeaves) CountPending(_ context.Context, companyID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.requests {
		if r.CompanyID == companyID && r.Status == models.LeavePending {
			n++
		}
	}
	return n, nil
}

type fakePayroll struct {
	mu      sync.Mutex
	records []*models.Payroll
}

func (f *fakePayroll) Create(_ context.Context, p *models.Payroll) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.EmployeeID == p.EmployeeID && r.Month == p.Month {
			return repository.ErrDuplicateKey
		}
	}
	p.ID = primitive.NewObjectID()
	cp := *p
	f.records = append(f.records, &cp)
	return nil
}

func (f *fakePayroll) FindByID(_ context.Context, id primitive.ObjectID) (*models.Payroll, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePayroll) MarkPaid(_ context.Context, id primitive.ObjectID, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id && r.Status != models.PayrollPaid {
			r.Status = models.PayrollPaid
			r.PaidAt = &at
			r.UpdatedAt = at
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePayroll) ListByEmployee(_ context.Context, employeeID primitive.ObjectID) ([]models.Payroll, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Payroll{}
	for _, r := range f.records {
		if r.EmployeeID == employeeID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, nil
}

func (f *fakePayroll) ListByCompany(_ context.Context, companyID primitive.ObjectID) ([]models.PayrollWithEmployee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.PayrollWithEmployee{}
	for _, r := range f.records {
		if r.CompanyID == companyID {
			out = append(out, models.PayrollWithEmployee{Payroll: *r})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, nil
}

type fakeQRCodes struct {
	mu    sync.Mutex
	codes []*models.QRCode
}

func (f *fakeQRCodes) Create(_ context.Context, qr *models.QRCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.codes {
		if c.Code == qr.Code || (c.CompanyID == qr.CompanyID && c.Date.Equal(qr.Date)) {
			return repository.ErrDuplicateKey
		}
	}
	qr.ID = primitive.NewObjectID()
	cp := *qr
	f.codes = append(f.codes, &cp)
	return nil
}

func (f *fakeQRCodes) FindByCode(_ context.Context, code string) (*models.QRCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.codes {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeQRCodes) FindByCompanyAndDate(_ context.Context, companyID primitive.ObjectID, date time.Time) (*models.QRCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.codes {
		if c.CompanyID == companyID && c.Date.Equal(date) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeCompanies struct {
	mu        sync.Mutex
	companies map[primitive.ObjectID]*models.Company
}

func newFakeCompanies() *fakeCompanies {
	return &fakeCompanies{companies: map[primitive.ObjectID]*models.Company{}}
}

func (f *fakeCompanies) Create(_ context.Context, c *models.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = primitive.NewObjectID()
	cp := *c
	f.companies[c.ID] = &cp
	return nil
}

func (f *fakeCompanies) FindByID(_ context.Context, id primitive.ObjectID) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCompanies) FindByName(_ context.Context, name string) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.companies {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanies) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.companies, id)
	return nil
}

type fakeDepartments struct {
	mu    sync.Mutex
	items []*models.Department
}

func (f *fakeDepartments) Create(_ context.Context, d *models.Department) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.items {
		if x.CompanyID == d.CompanyID && x.Name == d.Name {
			return repository.ErrDuplicateKey
		}
	}
	d.ID = primitive.NewObjectID()
	cp := *d
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeDepartments) Ensure(ctx context.Context, companyID primitive.ObjectID, name string) error {
	err := f.Create(ctx, &models.Department{CompanyID: companyID, Name: name})
	if err == repository.ErrDuplicateKey {
		return nil
	}
	return err
}

func (f *fakeDepartments) FindByID(_ context.Context, companyID, id primitive.ObjectID) (*models.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.items {
		if x.ID == id && x.CompanyID == companyID {
			cp := *x
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeDepartments) ListByCompany(_ context.Context, companyID primitive.ObjectID) ([]models.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Department{}
	for _, x := range f.items {
		if x.CompanyID == companyID {
			out = append(out, *x)
		}
	}
	return out, nil
}

func (f *fakeDepartments) Rename(_ context.Context, companyID, id primitive.ObjectID, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.items {
		if x.CompanyID == companyID && x.ID != id && x.Name == name {
			return false, repository.ErrDuplicateKey
		}
	}
	for _, x := range f.items {
		if x.ID == id && x.CompanyID == companyID {
			x.Name = name
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDepartments) Delete(_ context.Context, companyID, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, x := range f.items {
		if x.ID == id && x.CompanyID == companyID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeAssets struct {
	mu    sync.Mutex
	items []*models.Asset
}

func (f *fakeAssets) Create(_ context.Context, a *models.Asset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.items {
		if x.CompanyID == a.CompanyID && x.SerialNumber == a.SerialNumber {
			return repository.ErrDuplicateKey
		}
	}
	a.ID = primitive.NewObjectID()
	cp := *a
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeAssets) FindByID(_ context.Context, companyID, id primitive.ObjectID) (*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.items {
		if x.ID == id && x.CompanyID == companyID {
			cp := *x
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAssets) ListByCompany(_ context.Context, companyID primitive.ObjectID) ([]models.AssetWithAssignee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.AssetWithAssignee{}
	for _, x := range f.items {
		if x.CompanyID == companyID {
			out = append(out, models.AssetWithAssignee{Asset: *x})
		}
	}
	return out, nil
}

func (f *fakeAssets) Update(_ context.Context, a *models.Asset) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, x := range f.items {
		if x.ID == a.ID && x.CompanyID == a.CompanyID {
			cp := *a
			f.items[i] = &cp
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAssets) Delete(_ context.Context, companyID, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, x := range f.items {
		if x.ID == id && x.CompanyID == companyID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAssets) ReleaseFrom(_ context.Context, companyID, employeeID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.items {
		if x.CompanyID == companyID && x.AssignedTo != nil && *x.AssignedTo == employeeID {
			x.AssignedTo = nil
			x.Status = models.AssetAvailable
		}
	}
	return nil
}

type fakeCandidates struct {
	mu    sync.Mutex
	items []*models.Candidate
}

func (f *fakeCandidates) Create(_ context.Context, c *models.Candidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.items {
		if x.CompanyID == c.CompanyID && x.Email == c.Email {
			return repository.ErrDuplicateKey
		}
	}
	c.ID = primitive.NewObjectID()
	cp := *c
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeCandidates) FindByID(_ context.Context, companyID, id primitive.ObjectID) (*models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.items {
		if x.ID == id && x.CompanyID == companyID {
			cp := *x
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCandidates) ListByCompany(_ context.Context, companyID primitive.ObjectID) ([]models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Candidate{}
	for _, x := range f.items {
		if x.CompanyID == companyID {
			out = append(out, *x)
		}
	}
	return out, nil
}

func (f *fakeCandidates) SetStatus(_ context.Context, companyID, id primitive.ObjectID, status string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.items {
		if x.ID == id && x.CompanyID == companyID {
			x.Status = status
			x.UpdatedAt = at
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCandidates) Delete(_ context.Context, companyID, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, x := range f.items {
		if x.ID == id && x.CompanyID == companyID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeDocuments struct {
	mu    sync.Mutex
	docs  []*models.Document
	files map[primitive.ObjectID][]byte
}

func newFakeDocuments() *fakeDocuments {
	return &fakeDocuments{files: map[primitive.ObjectID][]byte{}}
}

func (f *fakeDocuments) Create(_ context.Context, doc *models.Document, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc.ID = primitive.NewObjectID()
	doc.FileID = primitive.NewObjectID()
	f.files[doc.FileID] = data
	cp := *doc
	f.docs = append(f.docs, &cp)
	return nil
}

func (f *fakeDocuments) FindByID(_ context.Context, companyID, id primitive.ObjectID) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.docs {
		if d.ID == id && d.CompanyID == companyID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeDocuments) ListVisible(_ context.Context, companyID, userID primitive.ObjectID) ([]models.DocumentWithUploader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.DocumentWithUploader{}
	for _, d := range f.docs {
		if d.CompanyID == companyID && (d.Owner == userID || d.UploadedBy == userID || d.IsPublic) {
			out = append(out, models.DocumentWithUploader{Document: *d})
		}
	}
	return out, nil
}

func (f *fakeDocuments) ListByOwner(_ context.Context, companyID, ownerID primitive.ObjectID) ([]models.DocumentWithUploader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.DocumentWithUploader{}
	for _, d := range f.docs {
		if d.CompanyID == companyID && d.Owner == ownerID {
			out = append(out, models.DocumentWithUploader{Document: *d})
		}
	}
	return out, nil
}

func (f *fakeDocuments) Open(_ context.Context, fileID primitive.ObjectID) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[fileID]
	if !ok {
		return nil, repository.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeDocuments) Delete(_ context.Context, doc *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, d := range f.docs {
		if d.ID == doc.ID {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			break
		}
	}
	delete(f.files, doc.FileID)
	return nil
}

type fakeSchedules struct {
	mu    sync.Mutex
	items []*models.WorkSchedule
}

func (f *fakeSchedules) Create(_ context.Context, s *models.WorkSchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = primitive.NewObjectID()
	cp := *s
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeSchedules) FindByID(_ context.Context, companyID, id primitive.ObjectID) (*models.WorkSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.items {
		if x.ID == id && x.CompanyID == companyID {
			cp := *x
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSchedules) ListByCompany(_ context.Context, companyID primitive.ObjectID) ([]models.WorkSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.WorkSchedule{}
	for _, x := range f.items {
		if x.CompanyID == companyID {
			out = append(out, *x)
		}
	}
	return out, nil
}

func (f *fakeSchedules) ListAll(_ context.Context) ([]models.WorkSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.WorkSchedule{}
	for _, x := range f.items {
		out = append(out, *x)
	}
	return out, nil
}

func (f *fakeSchedules) Update(_ context.Context, s *models.WorkSchedule) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, x := range f.items {
		if x.ID == s.ID && x.CompanyID == s.CompanyID {
			cp := *s
			f.items[i] = &cp
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSchedules) Delete(_ context.Context, companyID, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, x := range f.items {
		if x.ID == id && x.CompanyID == companyID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// recordingNotifier captures mail events synchronously.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) add(kind, to string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, kind+":"+to)
}

func (n *recordingNotifier) Welcome(emp *models.Employee) { n.add("welcome", emp.Email) }
func (n *recordingNotifier) NewLeaveRequest(admin, _ *models.Employee, _ *models.LeaveRequest) {
	n.add("new_leave", admin.Email)
}
func (n *recordingNotifier) LeaveStatusUpdated(emp *models.Employee, _ *models.LeaveRequest) {
	n.add("leave_status", emp.Email)
}
func (n *recordingNotifier) PayrollGenerated(emp *models.Employee, _ *models.Payroll) {
	n.add("payroll_generated", emp.Email)
}
func (n *recordingNotifier) PayrollPaid(emp *models.Employee, _ *models.Payroll) {
	n.add("payroll_paid", emp.Email)
}

func (n *recordingNotifier) count(kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if len(e) > len(kind) && e[:len(kind)+1] == kind+":" {
			c++
		}
	}
	return c
}

type publishedEvent struct {
	to string
	ev realtime.Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) ToUser(userID string, ev realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{to: "user:" + userID, ev: ev})
}

func (p *recordingPublisher) ToAdmins(companyID string, ev realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{to: "admins:" + companyID, ev: ev})
}

var (
	_ repository.EmployeeRepository     = (*fakeEmployees)(nil)
	_ repository.AttendanceRepository   = (*fakeAttendance)(nil)
	_ repository.LeaveRequestRepository = (*fakeLeaves)(nil)
	_ repository.PayrollRepository      = (*fakePayroll)(nil)
	_ repository.QRCodeRepository       = (*fakeQRCodes)(nil)
	_ repository.CompanyRepository      = (*fakeCompanies)(nil)
	_ repository.DepartmentRepository   = (*fakeDepartments)(nil)
	_ repository.AssetRepository        = (*fakeAssets)(nil)
	_ repository.CandidateRepository    = (*fakeCandidates)(nil)
	_ repository.DocumentRepository     = (*fakeDocuments)(nil)
	_ repository.WorkScheduleRepository = (*fakeSchedules)(nil)
	_ Notifier                          = (*recordingNotifier)(nil)
	_ Publisher                         = (*recordingPublisher)(nil)
)
