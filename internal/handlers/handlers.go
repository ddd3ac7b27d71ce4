package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/CreativeDT/McLeod-BE/internal/auth"
	"github.com/CreativeDT/McLeod-BE/internal/repository"
	"github.com/CreativeDT/McLeod-BE/internal/service"

	"github.com/gin-gonic/gin"
)

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler checks the operator credentials and returns a JWT token.
func LoginHandler(a *auth.JWTService, username, password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r loginReq
		if err := c.BindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if r.Username != username || r.Password != password {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		tok, err := a.GenerateToken(r.Username, 24*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": tok})
	}
}

// respondErr maps service/repository errors onto the API error contract:
// 404 for missing entities, 400 for bad input, 500 otherwise.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrCarrierNotFound),
		errors.Is(err, repository.ErrLaneNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
	case errors.Is(err, service.ErrCoordsNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates not available"})
	default:
		// Internal detail goes to the request log, not the client.
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

// DropdownDataHandler returns every booking-form reference list at once.
func DropdownDataHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		dd, err := svc.DropdownData(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, dd)
	}
}

func CarriersHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		names, err := svc.CarrierNames(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, names)
	}
}

func TruckTypesHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := svc.TruckTypes(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, types)
	}
}

func OriginsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		origins, err := svc.Origins(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, origins)
	}
}

func DestinationsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		dests, err := svc.Destinations(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, dests)
	}
}

func LaneIDsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := svc.LaneIDs(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ids)
	}
}

type laneDetailsReq struct {
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

func LaneDetailsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r laneDetailsReq
		if err := c.BindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing origin or destination"})
			return
		}
		ld, err := svc.LaneDetails(c.Request.Context(), r.Origin, r.Destination)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ld)
	}
}

type carrierIDReq struct {
	CarrierName string `json:"carrier_name" binding:"required"`
}

func CarrierIDHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r carrierIDReq
		if err := c.BindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing carrier_name"})
			return
		}
		carrier, err := svc.CarrierByName(c.Request.Context(), r.CarrierName)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"carrier_id": carrier.CarrierID, "scac_code": carrier.SCACCode})
	}
}

type availableTrucksReq struct {
	CarrierID    string `json:"carrier_id" binding:"required"`
	TruckType    string `json:"truck_type" binding:"required"`
	ScheduleDate string `json:"schedule_date" binding:"required"`
}

// AvailableTrucksHandler exposes the availability resolver directly.
func AvailableTrucksHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r availableTrucksReq
		if err := c.BindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
			return
		}
		ids, err := svc.AvailableTrucks(c.Request.Context(), r.CarrierID, r.TruckType, r.ScheduleDate)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"available_trucks": ids})
	}
}

// BookShipmentHandler runs the allocation engine. No-capacity outcomes are
// conveyed as 200 with success=false so the frontend can distinguish them
// from protocol errors.
func BookShipmentHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.BookingRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "Missing required fields"})
			return
		}

		res, err := svc.BookShipment(c.Request.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidRequest):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "Missing required fields"})
			case errors.Is(err, repository.ErrCarrierNotFound):
				c.JSON(http.StatusNotFound, gin.H{"success": false, "msg": "Carrier not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "Error booking shipment"})
			}
			return
		}

		switch res.Outcome {
		case service.OutcomeAllocated:
			c.JSON(http.StatusOK, gin.H{
				"success":            true,
				"msg":                "Shipment booked successfully!",
				"allocated_truck_id": res.TruckID,
				"shipment_id":        res.ShipmentID,
			})
		case service.OutcomeAlternatives:
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"msg": "The requested carrier does not have available trucks of the requested type for the chosen date. " +
					"However, the following carriers have availability for the same truck type:",
				"alternative_carriers": res.Alternatives,
			})
		default:
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"msg":     fmt.Sprintf("No trucks of type '%s' are available with any carrier for the chosen date.", req.TruckType),
			})
		}
	}
}

type lanePredictionReq struct {
	LaneID      string `json:"lane_id" binding:"required"`
	CarrierName string `json:"carrier_name" binding:"required"`
	Date        string `json:"date" binding:"required"`
}

func LanePredictionHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r lanePredictionReq
		if err := c.BindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
			return
		}
		lp, err := svc.LanePrediction(c.Request.Context(), r.LaneID, r.CarrierName, r.Date)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, lp)
	}
}

type aggregatedPredictionReq struct {
	LaneID string `json:"lane_id" binding:"required"`
	Date   string `json:"date" binding:"required"`
}

func AggregatedLanePredictionHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r aggregatedPredictionReq
		if err := c.BindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
			return
		}
		agg, err := svc.AggregatedLanePrediction(c.Request.Context(), r.LaneID, r.Date)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, agg)
	}
}

func InsightsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ins, err := svc.Insights(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ins)
	}
}

type destinationByOriginReq struct {
	Origin string `json:"origin" binding:"required"`
}

func DestinationByOriginHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r destinationByOriginReq
		if err := c.BindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing origin"})
			return
		}
		dests, err := svc.DestinationsByOrigin(c.Request.Context(), r.Origin)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, dests)
	}
}

func TruckTypesCountHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := svc.TruckTypeCounts(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, counts)
	}
}

type laneMapReq struct {
	LaneID       string `json:"lane_id" binding:"required"`
	IncludeRoute bool   `json:"include_route"`
}

func LaneMapHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r laneMapReq
		if err := c.BindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing lane_id"})
			return
		}
		lm, err := svc.LaneMap(c.Request.Context(), r.LaneID, r.IncludeRoute)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, lm)
	}
}

type originMapReq struct {
	Origin string `json:"origin" binding:"required"`
}

// OriginMapHandler returns one origin and all its reachable destinations
// with coordinates. A missing origin coordinate is 404 here: the origin
// itself is the entity being looked up.
func OriginMapHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r originMapReq
		if err := c.BindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing origin"})
			return
		}
		om, err := svc.OriginMap(c.Request.Context(), r.Origin)
		if err != nil {
			if errors.Is(err, service.ErrCoordsNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Coordinates not found for origin '%s'", r.Origin)})
				return
			}
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, om)
	}
}
