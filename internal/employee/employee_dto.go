package employee

type DirectoryEntry struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	ManagerID *string `json:"manager_id,omitempty"`
	HireDate  string  `json:"hire_date"`
	Status    string  `json:"status"`
}
