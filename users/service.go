package users

func NewService(repo Repository) (Service, error) {
	return repo, nil
}
