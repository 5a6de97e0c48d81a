package models

// DepartmentStats summarises one department's footprint.
type DepartmentStats struct {
	DepartmentID   string `db:"department_id" json:"department_id"`
	DepartmentName string `db:"department_name" json:"department_name"`
	Programmes     int    `db:"programmes" json:"programmes"`
	Students       int    `db:"students" json:"students"`
	Professors     int    `db:"professors" json:"professors"`
}

// StatsOverview aggregates entity counts for the dashboard.
type StatsOverview struct {
	Departments  int               `json:"departments"`
	Programmes   int               `json:"programmes"`
	Courses      int               `json:"courses"`
	Students     int               `json:"students"`
	Professors   int               `json:"professors"`
	ByDepartment []DepartmentStats `json:"by_department,omitempty"`
}
