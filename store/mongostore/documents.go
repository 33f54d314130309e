package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"medizo/models"
)

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Image       string             `bson:"image,omitempty"`
	Images      []string           `bson:"images"`
	Stock       int                `bson:"stock"`
	Category    string             `bson:"category"`
	Featured    bool               `bson:"featured"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func toProductDoc(p *models.Product) *productDoc {
	return &productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Images:      p.Images,
		Stock:       p.Stock,
		Category:    p.Category,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d *productDoc) toModel() models.Product {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return models.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Image:       d.Image,
		Images:      images,
		Stock:       d.Stock,
		Category:    d.Category,
		Featured:    d.Featured,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type orderItemDoc struct {
	ProductID string  `bson:"productId"`
	Name      string  `bson:"name"`
	Price     float64 `bson:"price"`
	Qty       int     `bson:"qty"`
}

type shippingDoc struct {
	FullName     string `bson:"fullName,omitempty"`
	Phone        string `bson:"phone,omitempty"`
	AddressLine  string `bson:"addressLine,omitempty"`
	Province     string `bson:"province,omitempty"`
	City         string `bson:"city,omitempty"`
	Municipality string `bson:"municipality,omitempty"`
	PostalCode   string `bson:"postalCode,omitempty"`
	Country      string `bson:"country,omitempty"`
}

type orderDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	OrderNumber       string             `bson:"orderNumber"`
	UserID            string             `bson:"userId"`
	Items             []orderItemDoc     `bson:"items"`
	Subtotal          float64            `bson:"subtotal"`
	Tax               float64            `bson:"tax"`
	ShippingFee       float64            `bson:"shippingFee"`
	Total             float64            `bson:"total"`
	Status            string             `bson:"status"`
	Shipping          shippingDoc        `bson:"shipping"`
	EstimatedDelivery *time.Time         `bson:"estimatedDelivery,omitempty"`
	TrackingInfo      string             `bson:"trackingInfo,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func toOrderDoc(o *models.Order) *orderDoc {
	items := make([]orderItemDoc, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemDoc(it)
	}
	return &orderDoc{
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Items:       items,
		Subtotal:    o.Subtotal,
		Tax:         o.Tax,
		ShippingFee: o.ShippingFee,
		Total:       o.Total,
		Status:      string(o.Status),
		Shipping: shippingDoc{
			FullName:     o.Shipping.FullName,
			Phone:        o.Shipping.Phone,
			AddressLine:  o.Shipping.AddressLine,
			Province:     o.Shipping.Province,
			City:         o.Shipping.City,
			Municipality: o.Shipping.Municipality,
			PostalCode:   o.Shipping.PostalCode,
			Country:      o.Shipping.Country,
		},
		EstimatedDelivery: o.EstimatedDelivery,
		TrackingInfo:      o.TrackingInfo,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func (d *orderDoc) toModel() models.Order {
	items := make([]models.OrderItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.OrderItem(it)
	}
	return models.Order{
		ID:          d.ID.Hex(),
		OrderNumber: d.OrderNumber,
		UserID:      d.UserID,
		Items:       items,
		Subtotal:    d.Subtotal,
		Tax:         d.Tax,
		ShippingFee: d.ShippingFee,
		Total:       d.Total,
		Status:      models.OrderStatus(d.Status),
		Shipping: models.ShippingAddress{
			FullName:     d.Shipping.FullName,
			Phone:        d.Shipping.Phone,
			AddressLine:  d.Shipping.AddressLine,
			Province:     d.Shipping.Province,
			City:         d.Shipping.City,
			Municipality: d.Shipping.Municipality,
			PostalCode:   d.Shipping.PostalCode,
			Country:      d.Shipping.Country,
		},
		EstimatedDelivery: d.EstimatedDelivery,
		TrackingInfo:      d.TrackingInfo,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	Phone        string             `bson:"phone,omitempty"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func toUserDoc(u *models.User) *userDoc {
	return &userDoc{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Phone:        u.Phone,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d *userDoc) toModel() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Phone:        d.Phone,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type replyDoc struct {
	UserID    string    `bson:"userId"`
	UserName  string    `bson:"userName"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"createdAt"`
}

type reviewDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID string             `bson:"productId"`
	UserID    string             `bson:"userId"`
	UserName  string             `bson:"userName"`
	Rating    int                `bson:"rating"`
	Title     string             `bson:"title"`
	Text      string             `bson:"text"`
	Replies   []replyDoc         `bson:"replies"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func toReviewDoc(r *models.Review) *reviewDoc {
	replies := make([]replyDoc, len(r.Replies))
	for i, rep := range r.Replies {
		replies[i] = replyDoc(rep)
	}
	return &reviewDoc{
		ProductID: r.ProductID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Title:     r.Title,
		Text:      r.Text,
		Replies:   replies,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (d *reviewDoc) toModel() models.Review {
	replies := make([]models.ReviewReply, len(d.Replies))
	for i, rep := range d.Replies {
		replies[i] = models.ReviewReply(rep)
	}
	return models.Review{
		ID:        d.ID.Hex(),
		ProductID: d.ProductID,
		UserID:    d.UserID,
		UserName:  d.UserName,
		Rating:    d.Rating,
		Title:     d.Title,
		Text:      d.Text,
		Replies:   replies,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
