package service

import (
	"testing"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupViewTest(t *testing.T) (ProductViewService, ContentService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	contentRepo := repository.NewContentRepository(testDB)
	viewService := NewProductViewService(productRepo, contentRepo)
	contentService := NewContentService(contentRepo)
	return viewService, contentService, testDB
}

func createViewProduct(t *testing.T, testDB *gorm.DB) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:        "Sunset Gradient",
		Description: "A warm gradient design.",
		BasePrice:   500,
		Image:       "https://cdn.example.com/sunset/main.jpg",
		Image2:      "https://cdn.example.com/sunset/angle.jpg",
	}
	require.NoError(t, testDB.Create(product).Error)

	variants := []model.ProductVariant{
		{
			ProductID: product.ID,
			CaseType:  model.CaseTypeSnap,
			Image:     "https://cdn.example.com/sunset/snap.jpg",
		},
		{
			ProductID:   product.ID,
			CaseType:    model.CaseTypeMetal,
			Title:       "Sunset Gradient Metal",
			Description: "Etched on aluminum.",
			Price:       550,
			Image:       "https://cdn.example.com/sunset/metal.jpg",
		},
	}
	require.NoError(t, testDB.Create(&variants).Error)
	return product
}

func TestProductViewService_TitleAndDescriptionPrecedence(t *testing.T) {
	viewService, contentService, testDB := setupViewTest(t)
	product := createViewProduct(t, testDB)

	// No content row: the metal variant overrides, snap falls to product.
	view, err := viewService.ResolveView(product.ID, model.CaseTypeMetal)
	require.NoError(t, err)
	assert.Equal(t, "Sunset Gradient Metal", view.Title)
	assert.Equal(t, "Etched on aluminum.", view.Description)

	view, err = viewService.ResolveView(product.ID, model.CaseTypeSnap)
	require.NoError(t, err)
	assert.Equal(t, "Sunset Gradient", view.Title)
	assert.Equal(t, "A warm gradient design.", view.Description)

	// Case content copy never reaches title or description, for either
	// case type.
	_, err = contentService.SaveContent(CaseContentInput{
		CaseType:    model.CaseTypeSnap,
		Title:       "Snap Case",
		Description: "Generic snap copy.",
	})
	require.NoError(t, err)
	_, err = contentService.SaveContent(CaseContentInput{
		CaseType:    model.CaseTypeMetal,
		Title:       "Metal Case",
		Description: "Generic metal copy.",
	})
	require.NoError(t, err)

	view, err = viewService.ResolveView(product.ID, model.CaseTypeSnap)
	require.NoError(t, err)
	assert.Equal(t, "Sunset Gradient", view.Title)
	assert.Equal(t, "A warm gradient design.", view.Description)

	view, err = viewService.ResolveView(product.ID, model.CaseTypeMetal)
	require.NoError(t, err)
	assert.Equal(t, "Sunset Gradient Metal", view.Title)
	assert.Equal(t, "Etched on aluminum.", view.Description)
}

func TestProductViewService_ProductCopyWinsWithoutVariant(t *testing.T) {
	viewService, contentService, testDB := setupViewTest(t)

	product := &model.Product{
		Name:        "Sunset Gradient",
		Description: "A warm gradient design.",
		BasePrice:   500,
	}
	require.NoError(t, testDB.Create(product).Error)

	_, err := contentService.SaveContent(CaseContentInput{
		CaseType:    model.CaseTypeSnap,
		Title:       "Snap Case",
		Description: "Generic snap copy.",
	})
	require.NoError(t, err)

	// Even with no variant to override it, the product's own name and
	// description win over the case-type copy.
	view, err := viewService.ResolveView(product.ID, model.CaseTypeSnap)
	require.NoError(t, err)
	assert.Equal(t, "Sunset Gradient", view.Title)
	assert.Equal(t, "A warm gradient design.", view.Description)
}

func TestProductViewService_PricePrecedence(t *testing.T) {
	viewService, contentService, testDB := setupViewTest(t)
	product := createViewProduct(t, testDB)

	// Snap variant has no price: base price applies.
	view, err := viewService.ResolveView(product.ID, model.CaseTypeSnap)
	require.NoError(t, err)
	assert.Equal(t, 500.0, view.Price)

	// Metal variant carries its own price.
	view, err = viewService.ResolveView(product.ID, model.CaseTypeMetal)
	require.NoError(t, err)
	assert.Equal(t, 550.0, view.Price)

	// A case-type campaign price overrides even the variant.
	campaign := 600.0
	_, err = contentService.SaveContent(CaseContentInput{
		CaseType: model.CaseTypeMetal,
		Price:    &campaign,
	})
	require.NoError(t, err)

	view, err = viewService.ResolveView(product.ID, model.CaseTypeMetal)
	require.NoError(t, err)
	assert.Equal(t, 600.0, view.Price)
}

func TestProductViewService_FeaturesFallBackToBuiltins(t *testing.T) {
	viewService, contentService, testDB := setupViewTest(t)
	product := createViewProduct(t, testDB)

	view, err := viewService.ResolveView(product.ID, model.CaseTypeSnap)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Lightweight & slim",
		"Easy snap-on installation",
		"Scratch-resistant finish",
	}, view.Features)

	view, err = viewService.ResolveView(product.ID, model.CaseTypeMetal)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Premium aluminum build",
		"Maximum protection",
		"Laser-etched design",
	}, view.Features)

	// Stored features replace the built-ins outright.
	_, err = contentService.SaveContent(CaseContentInput{
		CaseType: model.CaseTypeSnap,
		Features: []string{"Recycled materials"},
	})
	require.NoError(t, err)

	view, err = viewService.ResolveView(product.ID, model.CaseTypeSnap)
	require.NoError(t, err)
	assert.Equal(t, []string{"Recycled materials"}, view.Features)
}

func TestProductViewService_GalleryOrderAndDedup(t *testing.T) {
	viewService, contentService, testDB := setupViewTest(t)
	product := createViewProduct(t, testDB)

	_, err := contentService.SaveContent(CaseContentInput{
		CaseType:      model.CaseTypeSnap,
		DefaultImage2: "https://cdn.example.com/snap/lifestyle.jpg",
		// Duplicates the product's primary image; must be kept only once,
		// at its first position.
		DefaultImage3: "https://cdn.example.com/sunset/main.jpg",
	})
	require.NoError(t, err)

	// Order: selected variant, product primary, product extra slot, content
	// default, other variant. The duplicated primary keeps its first slot.
	view, err := viewService.ResolveView(product.ID, model.CaseTypeSnap)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn.example.com/sunset/snap.jpg",
		"https://cdn.example.com/sunset/main.jpg",
		"https://cdn.example.com/sunset/angle.jpg",
		"https://cdn.example.com/snap/lifestyle.jpg",
		"https://cdn.example.com/sunset/metal.jpg",
	}, view.Gallery)
}

func TestProductViewService_GalleryLeadsWithSelectedCaseType(t *testing.T) {
	viewService, _, testDB := setupViewTest(t)
	product := createViewProduct(t, testDB)

	snapView, err := viewService.ResolveView(product.ID, model.CaseTypeSnap)
	require.NoError(t, err)
	metalView, err := viewService.ResolveView(product.ID, model.CaseTypeMetal)
	require.NoError(t, err)

	// Switching case types restarts the gallery at the new variant's image.
	assert.Equal(t, "https://cdn.example.com/sunset/snap.jpg", snapView.Gallery[0])
	assert.Equal(t, "https://cdn.example.com/sunset/metal.jpg", metalView.Gallery[0])
}

func TestProductViewService_ResolveView_ProductNotFound(t *testing.T) {
	viewService, _, _ := setupViewTest(t)

	_, err := viewService.ResolveView(9999, model.CaseTypeSnap)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductViewService_ResolveView_InvalidCaseType(t *testing.T) {
	viewService, _, _ := setupViewTest(t)

	_, err := viewService.ResolveView(1, model.CaseType("glass"))
	assert.ErrorIs(t, err, ErrInvalidCaseType)
}

func TestProductViewService_ResolveViews_SharesContent(t *testing.T) {
	viewService, contentService, testDB := setupViewTest(t)

	products := []model.Product{
		{Name: "Design A", BasePrice: 100},
		{Name: "Design B", BasePrice: 200},
	}
	require.NoError(t, testDB.Create(&products).Error)

	campaign := 150.0
	_, err := contentService.SaveContent(CaseContentInput{
		CaseType: model.CaseTypeSnap,
		Price:    &campaign,
	})
	require.NoError(t, err)

	views, err := viewService.ResolveViews(products, model.CaseTypeSnap)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 150.0, views[0].Price)
	assert.Equal(t, 150.0, views[1].Price)
}
