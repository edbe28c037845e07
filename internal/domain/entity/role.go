package entity

// Role rol de un usuario. Tipo cerrado: los permisos de cada variante se resuelven
// con un switch, de modo que un rol desconocido (string con typo, token viejo) no
// recibe ningún permiso.
type Role string

// Roles válidos para User.
const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Permission capacidad nombrada que se verifica contra el rol.
type Permission string

// Permisos del sistema.
const (
	PermCreate          Permission = "create"
	PermRead            Permission = "read"
	PermUpdate          Permission = "update"
	PermDelete          Permission = "delete"
	PermManageUsers     Permission = "manage_users"
	PermGenerateReports Permission = "generate_reports"
)

// ParseRole valida un string de rol. ok=false para cualquier valor fuera del conjunto.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleViewer:
		return Role(s), true
	}
	return "", false
}

// Permissions devuelve el conjunto de permisos del rol.
// Esta tabla es la única fuente de verdad de autorización: toda verificación de
// rutas debe pasar por Can, nunca re-derivar lógica de roles.
func (r Role) Permissions() []Permission {
	switch r {
	case RoleAdmin:
		return []Permission{PermCreate, PermRead, PermUpdate, PermDelete, PermManageUsers, PermGenerateReports}
	case RoleEditor:
		return []Permission{PermCreate, PermRead, PermUpdate, PermDelete, PermGenerateReports}
	case RoleViewer:
		return []Permission{PermRead}
	}
	// Rol desconocido: cerrado por defecto
	return nil
}

// Can indica si el rol tiene el permiso. Rol desconocido -> false.
func (r Role) Can(p Permission) bool {
	for _, granted := range r.Permissions() {
		if granted == p {
			return true
		}
	}
	return false
}

// CanAny indica si el rol tiene al menos uno de los permisos.
func (r Role) CanAny(perms ...Permission) bool {
	for _, p := range perms {
		if r.Can(p) {
			return true
		}
	}
	return false
}
