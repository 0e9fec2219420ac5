package services

import (
	"os"
	"path/filepath"

	"github.com/javajoker/ecommerce-api/internal/models"
	"github.com/javajoker/ecommerce-api/internal/testutil"
	"github.com/javajoker/ecommerce-api/internal/utils"
)

func (s *ServiceSuite) TestProductSearchMatchesAnyField() {
	svc := NewProductService(s.db, s.storage)
	s.product("Desk Lamp", "Lumen", "home", "19.90")
	s.product("Kettle", "Brew&Co", "kitchen", "30")
	s.product("Notebook", "Paper 100%", "office", "3")

	views, err := svc.Search(s.ctx, "lumen", 0)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal("Desk Lamp", views[0].ProductName)

	views, err = svc.Search(s.ctx, "KITCH", 0)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal("Kettle", views[0].ProductName)

	views, err = svc.Search(s.ctx, "100%", 0)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal("Notebook", views[0].ProductName)

	views, err = svc.Search(s.ctx, "%", 0)
	s.Require().NoError(err)
	s.Len(views, 1)

	views, err = svc.Search(s.ctx, "", 0)
	s.Require().NoError(err)
	s.Len(views, 3)
}

func (s *ServiceSuite) TestProductSearchFoldsNonASCIICase() {
	svc := NewProductService(s.db, s.storage)
	s.product("ÉCLAIR", "Pâtisserie Noël", "dessert", "4")
	s.product("Eclair", "Bakery", "dessert", "3")

	views, err := svc.Search(s.ctx, "éclair", 0)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal("ÉCLAIR", views[0].ProductName)

	views, err = svc.Search(s.ctx, "NOËL", 0)
	s.Require().NoError(err)
	s.Len(views, 1)

	// Fields are matched one at a time
	views, err = svc.Search(s.ctx, "bakery\ndessert", 0)
	s.Require().NoError(err)
	s.Empty(views)
}

func (s *ServiceSuite) TestProductCreateRejectsPriceBeyondColumn() {
	svc := NewProductService(s.db, s.storage)

	_, err := svc.Create(s.ctx, &CreateProductRequest{ProductName: "Yacht", Price: "100000000"}, nil, nil)
	var fields FieldErrors
	s.Require().ErrorAs(err, &fields)
	s.Contains(fields, "price")

	_, err = svc.Create(s.ctx, &CreateProductRequest{ProductName: "Yacht", Price: "99999999.995"}, nil, nil)
	s.Require().ErrorAs(err, &fields)

	s.Zero(s.count(&models.Product{}, ""))
}

func (s *ServiceSuite) TestProductListPagesAndFilters() {
	svc := NewProductService(s.db, s.storage)
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		s.product(name, "s", "home", "1")
	}
	s.product("F", "s", "garden", "1")

	views, page, err := svc.List(s.ctx, ProductQuery{PaginationParams: utils.NewPaginationParams(2, 2)})
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal("C", views[0].ProductName)
	s.Equal(int64(6), page.Total)
	s.Equal(3, page.TotalPages)

	views, page, err = svc.List(s.ctx, ProductQuery{PaginationParams: utils.NewPaginationParams(1, 10), Category: "garden"})
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal("F", views[0].ProductName)
	s.Equal(int64(1), page.Total)

	views, _, err = svc.List(s.ctx, ProductQuery{PaginationParams: utils.NewPaginationParams(9, 10)})
	s.Require().NoError(err)
	s.Empty(views)
}

func (s *ServiceSuite) TestProductFlagsFollowViewer() {
	svc := NewProductService(s.db, s.storage)
	favorites := NewFavoriteService(s.db, s.notifications)
	cart := NewCartService(s.db)
	alice := s.user("alice")
	bob := s.user("bob")
	lamp := s.product("Lamp", "Lumen", "home", "10")
	s.product("Desk", "Oak", "home", "20")

	_, err := favorites.Add(s.ctx, alice.ID, lamp.ID)
	s.Require().NoError(err)
	_, err = cart.Add(s.ctx, &CartRequest{UserID: alice.ID, ProductID: lamp.ID}, `{}`)
	s.Require().NoError(err)

	views, err := svc.All(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal(models.Flag(true), views[0].IsFavourite)
	s.Equal(models.Flag(true), views[0].IsInCart)
	s.Equal(models.Flag(false), views[1].IsFavourite)

	for _, viewer := range []uint{bob.ID, 0} {
		views, err = svc.All(s.ctx, viewer)
		s.Require().NoError(err)
		s.Equal(models.Flag(false), views[0].IsFavourite)
		s.Equal(models.Flag(false), views[0].IsInCart)
	}
}

func (s *ServiceSuite) TestProductCreateStoresImage() {
	svc := NewProductService(s.db, s.storage)
	header := testutil.FileHeader(s.T(), "image", "lamp.png", testutil.PNG)
	file, err := header.Open()
	s.Require().NoError(err)
	defer file.Close()

	product, err := svc.Create(s.ctx, &CreateProductRequest{
		ProductName: "Lamp",
		Price:       "19.999",
		Quantity:    4,
		Supplier:    "Lumen",
		Category:    "home",
	}, file, header)
	s.Require().NoError(err)

	s.Equal("20.00", product.Price.StringFixed(2))
	s.Contains(product.Image, "http://localhost:8080/media/products/")
	s.FileExists(filepath.Join(s.cfg.Storage.LocalPath, filepath.FromSlash(product.ImageKey)))
}

func (s *ServiceSuite) TestProductCreateRejectsBadInput() {
	svc := NewProductService(s.db, s.storage)

	header := testutil.FileHeader(s.T(), "image", "lamp.png", testutil.PNG)
	file, err := header.Open()
	s.Require().NoError(err)
	defer file.Close()

	_, err = svc.Create(s.ctx, &CreateProductRequest{ProductName: "Lamp", Price: "-1"}, file, header)
	var fieldErrs FieldErrors
	s.Require().ErrorAs(err, &fieldErrs)
	s.Contains(fieldErrs, "price")

	text := testutil.FileHeader(s.T(), "image", "lamp.png", []byte("not an image at all"))
	textFile, err := text.Open()
	s.Require().NoError(err)
	defer textFile.Close()

	_, err = svc.Create(s.ctx, &CreateProductRequest{ProductName: "Lamp", Price: "1"}, textFile, text)
	s.ErrorIs(err, ErrInvalidImage)
	s.Zero(s.count(&models.Product{}, ""))
}

func (s *ServiceSuite) TestPosterCreateAndList() {
	svc := NewPosterService(s.db, s.storage)

	for _, title := range []string{"Summer", "Winter"} {
		header := testutil.FileHeader(s.T(), "image", title+".png", testutil.PNG)
		file, err := header.Open()
		s.Require().NoError(err)
		_, err = svc.Create(s.ctx, &CreatePosterRequest{Title: title}, file, header)
		file.Close()
		s.Require().NoError(err)
	}

	posters, err := svc.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(posters, 2)
	s.Equal("Winter", posters[0].Title)
	s.Contains(posters[0].Image, "/media/posters/")
}

func (s *ServiceSuite) TestStorageLocalRoundTrip() {
	header := testutil.FileHeader(s.T(), "image", "photo.PNG", testutil.PNG)
	file, err := header.Open()
	s.Require().NoError(err)
	defer file.Close()

	upload, err := s.storage.UploadFile(s.ctx, file, header, s.storage.GetDefaultUploadOptions("users"))
	s.Require().NoError(err)
	s.Equal("image/png", upload.MimeType)
	s.Regexp(`^users/\d{8}_[0-9a-f-]{36}\.png$`, upload.Key)

	body, contentType, err := s.storage.Open(s.ctx, upload.Key)
	s.Require().NoError(err)
	s.Equal("image/png", contentType)
	s.Require().NoError(body.Close())

	s.Require().NoError(s.storage.DeleteFile(s.ctx, upload.Key))
	s.NoError(s.storage.DeleteFile(s.ctx, upload.Key))

	_, _, err = s.storage.Open(s.ctx, upload.Key)
	s.ErrorIs(err, ErrFileNotFound)
}

func (s *ServiceSuite) TestStorageRejectsOversizeAndWrongExtension() {
	big := make([]byte, 2*1024*1024)
	copy(big, testutil.PNG)
	header := testutil.FileHeader(s.T(), "image", "huge.png", big)
	file, err := header.Open()
	s.Require().NoError(err)
	defer file.Close()

	_, err = s.storage.UploadFile(s.ctx, file, header, s.storage.GetDefaultUploadOptions("products"))
	s.ErrorIs(err, ErrFileTooLarge)

	header = testutil.FileHeader(s.T(), "image", "notes.txt", testutil.PNG)
	file, err = header.Open()
	s.Require().NoError(err)
	defer file.Close()

	_, err = s.storage.UploadFile(s.ctx, file, header, s.storage.GetDefaultUploadOptions("products"))
	s.ErrorIs(err, ErrInvalidImage)

	entries, err := os.ReadDir(s.cfg.Storage.LocalPath)
	s.Require().NoError(err)
	s.Empty(entries)
}
