package entity

import (
	"strings"
	"time"
)

// DefaultCategoryColor is applied to categories created without a colour.
const DefaultCategoryColor = "#6B7280"

// Category groups products of a single owner.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	IsDefault   bool      `json:"isDefault"`   // Default categories can never be updated or deleted.
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryPatch lists the fields an update may change. Nil fields are left untouched.
type CategoryPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// IsEmpty reports whether the patch changes nothing.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Color == nil
}

// Apply copies the fields set in patch onto the category and stamps UpdatedAt.
func (c *Category) Apply(patch CategoryPatch, now time.Time) {
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Color != nil {
		c.Color = *patch.Color
	}
	c.UpdatedAt = now
}

// CategorySeed is one name/description/colour triple of a business template.
type CategorySeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// BusinessTemplate is a fixed set of suggested categories for a business type.
type BusinessTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Categories  []CategorySeed `json:"categories"`
}

// Categories is a snapshot of categories with lookup helpers.
type Categories []*Category

// ByID returns the category with the given id, or nil.
func (cs Categories) ByID(id string) *Category {
	for _, c := range cs {
		if c.ID == id {
			return c
		}
	}

	return nil
}

// HasName reports whether a category with the given name exists, ignoring case and surrounding space.
func (cs Categories) HasName(name string) bool {
	needle := strings.TrimSpace(name)
	for _, c := range cs {
		if strings.EqualFold(strings.TrimSpace(c.Name), needle) {
			return true
		}
	}

	return false
}

var sharedPromotions = CategorySeed{Name: "Promoções", Description: "Produtos em promoção", Color: "#DC2626"}

var sharedOthers = CategorySeed{Name: "Outros", Description: "Outros produtos", Color: "#9CA3AF"}

var businessTemplates = []BusinessTemplate{
	{
		ID:          "fashion",
		Name:        "Moda e Vestuário",
		Description: "Roupas, calçados, acessórios e bolsas",
		Categories: []CategorySeed{
			{Name: "Roupas", Description: "Vestuário em geral", Color: "#3B82F6"},
			{Name: "Calçados", Description: "Sapatos e tênis", Color: "#10B981"},
			{Name: "Acessórios", Description: "Acessórios diversos", Color: "#F59E0B"},
			{Name: "Bolsas", Description: "Bolsas e mochilas", Color: "#8B5CF6"},
			{Name: "Promoções", Description: "Produtos em promoção", Color: "#EC4899"},
			{Name: "Novidades", Description: "Lançamentos", Color: "#6B7280"},
			sharedOthers,
		},
	},
	{
		ID:          "beauty",
		Name:        "Beleza e Cosméticos",
		Description: "Produtos de beleza, perfumes e cuidados pessoais",
		Categories: []CategorySeed{
			{Name: "Maquiagem", Description: "Produtos de maquiagem", Color: "#EC4899"},
			{Name: "Skincare", Description: "Cuidados com a pele", Color: "#10B981"},
			{Name: "Perfumes", Description: "Perfumes e fragrâncias", Color: "#8B5CF6"},
			{Name: "Cabelo", Description: "Produtos para cabelo", Color: "#F59E0B"},
			{Name: "Corpo", Description: "Produtos para o corpo", Color: "#3B82F6"},
			sharedPromotions,
			sharedOthers,
		},
	},
	{
		ID:          "electronics",
		Name:        "Eletrônicos",
		Description: "Produtos eletrônicos e tecnologia",
		Categories: []CategorySeed{
			{Name: "Smartphones", Description: "Celulares e smartphones", Color: "#3B82F6"},
			{Name: "Computadores", Description: "Notebooks e desktops", Color: "#10B981"},
			{Name: "Acessórios", Description: "Acessórios eletrônicos", Color: "#F59E0B"},
			{Name: "Gaming", Description: "Produtos para games", Color: "#8B5CF6"},
			{Name: "Áudio", Description: "Fones e caixas de som", Color: "#EC4899"},
			sharedPromotions,
			sharedOthers,
		},
	},
	{
		ID:          "home",
		Name:        "Casa e Decoração",
		Description: "Produtos para casa, decoração e jardinagem",
		Categories: []CategorySeed{
			{Name: "Decoração", Description: "Itens decorativos", Color: "#3B82F6"},
			{Name: "Cozinha", Description: "Utensílios de cozinha", Color: "#10B981"},
			{Name: "Jardinagem", Description: "Produtos para jardim", Color: "#F59E0B"},
			{Name: "Organização", Description: "Produtos organizacionais", Color: "#8B5CF6"},
			{Name: "Iluminação", Description: "Lâmpadas e luminárias", Color: "#EC4899"},
			sharedPromotions,
			sharedOthers,
		},
	},
	{
		ID:          "food",
		Name:        "Alimentos e Bebidas",
		Description: "Comidas, bebidas e produtos alimentícios",
		Categories: []CategorySeed{
			{Name: "Alimentos", Description: "Produtos alimentícios", Color: "#3B82F6"},
			{Name: "Bebidas", Description: "Bebidas diversas", Color: "#10B981"},
			{Name: "Doces", Description: "Doces e sobremesas", Color: "#F59E0B"},
			{Name: "Orgânicos", Description: "Produtos orgânicos", Color: "#8B5CF6"},
			{Name: "Promoções", Description: "Produtos em promoção", Color: "#EC4899"},
			{Name: "Novidades", Description: "Novos produtos", Color: "#6B7280"},
			sharedOthers,
		},
	},
	{
		ID:          "sports",
		Name:        "Esportes e Fitness",
		Description: "Produtos esportivos e para atividades físicas",
		Categories: []CategorySeed{
			{Name: "Roupas Esportivas", Description: "Vestuário para esportes", Color: "#3B82F6"},
			{Name: "Calçados Esportivos", Description: "Tênis e sapatos esportivos", Color: "#10B981"},
			{Name: "Equipamentos", Description: "Equipamentos esportivos", Color: "#F59E0B"},
			{Name: "Suplementos", Description: "Suplementos alimentares", Color: "#8B5CF6"},
			{Name: "Fitness", Description: "Produtos para fitness", Color: "#EC4899"},
			sharedPromotions,
			sharedOthers,
		},
	},
	{
		ID:          "books",
		Name:        "Livros e Educação",
		Description: "Livros, materiais educativos e publicações",
		Categories: []CategorySeed{
			{Name: "Livros", Description: "Livros diversos", Color: "#3B82F6"},
			{Name: "Educação", Description: "Materiais educativos", Color: "#10B981"},
			{Name: "Revistas", Description: "Revistas e publicações", Color: "#F59E0B"},
			{Name: "Papelaria", Description: "Produtos de papelaria", Color: "#8B5CF6"},
			{Name: "Promoções", Description: "Produtos em promoção", Color: "#EC4899"},
			{Name: "Novidades", Description: "Novos lançamentos", Color: "#6B7280"},
			sharedOthers,
		},
	},
	{
		ID:          "generic",
		Name:        "Negócio Genérico",
		Description: "Categorias genéricas para qualquer tipo de negócio",
		Categories: []CategorySeed{
			{Name: "Produtos Principais", Description: "Produtos principais do seu negócio", Color: "#3B82F6"},
			{Name: "Acessórios", Description: "Acessórios e complementos", Color: "#10B981"},
			{Name: "Promoções", Description: "Produtos em promoção", Color: "#F59E0B"},
			{Name: "Novidades", Description: "Produtos novos e lançamentos", Color: "#8B5CF6"},
			{Name: "Mais Vendidos", Description: "Produtos mais populares", Color: "#EC4899"},
			{Name: "Categoria 1", Description: "Primeira categoria personalizada", Color: "#6B7280"},
			{Name: "Categoria 2", Description: "Segunda categoria personalizada", Color: "#059669"},
			{Name: "Categoria 3", Description: "Terceira categoria personalizada", Color: "#DC2626"},
			{Name: "Categoria 4", Description: "Quarta categoria personalizada", Color: "#7C3AED"},
			sharedOthers,
		},
	},
}

// BusinessTemplates returns a copy of the built-in business templates.
func BusinessTemplates() []BusinessTemplate {
	out := make([]BusinessTemplate, len(businessTemplates))
	for i, t := range businessTemplates {
		t.Categories = append([]CategorySeed(nil), t.Categories...)
		out[i] = t
	}

	return out
}

// FindBusinessTemplate looks a template up by id.
func FindBusinessTemplate(id string) (BusinessTemplate, bool) {
	for _, t := range BusinessTemplates() {
		if t.ID == id {
			return t, true
		}
	}

	return BusinessTemplate{}, false
}
