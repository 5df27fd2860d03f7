package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Catalog() CatalogRepository
	Carts() CartRepository
	Orders() OrderRepository
	Artifacts() ArtifactRepository
}
