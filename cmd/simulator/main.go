package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Vehicle mirrors the server's vehicle payload.
type Vehicle struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Plate    string  `json:"plate"`
	Type     string  `json:"type"`
	Capacity float64 `json:"capacity"`
	Odometer float64 `json:"odometer"`
	Year     int     `json:"year"`
	Fuel     string  `json:"fuel"`
	Region   string  `json:"region"`
}

// Driver mirrors the server's driver payload.
type Driver struct {
	ID            string    `json:"id,omitempty"`
	Name          string    `json:"name"`
	LicenseNo     string    `json:"licenseNo"`
	Category      string    `json:"category"`
	LicenseExpiry time.Time `json:"licenseExpiry"`
	SafetyScore   int       `json:"safetyScore"`
	Phone         string    `json:"phone"`
	Joined        time.Time `json:"joined"`
}

// Trip mirrors the server's trip payload.
type Trip struct {
	ID          string    `json:"id,omitempty"`
	VehicleID   string    `json:"vehicleId"`
	DriverID    string    `json:"driverId"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	CargoType   string    `json:"cargoType"`
	CargoWeight float64   `json:"cargoWeight"`
	EstimatedKm float64   `json:"estimatedKm"`
	Revenue     float64   `json:"revenue"`
	Date        time.Time `json:"date"`
}

var cities = []string{
	"Mumbai", "Pune", "Delhi", "Jaipur", "Ahmedabad", "Surat",
	"Bengaluru", "Chennai", "Hyderabad", "Nagpur", "Indore", "Kochi",
}

var cargoTypes = []string{
	"Electronics", "Textiles", "Food Grains", "Auto Parts", "Pharma",
	"Building Materials", "FMCG", "Documents", "Machinery",
}

var authToken string

func authorizedRequest(method, url string, body interface{}) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

// login registers a manager account (ignoring "already exists") and logs in.
func login(apiURL string) error {
	register := map[string]interface{}{
		"username": "simulator",
		"email":    "simulator@logicore.dev",
		"password": "simulator-pass",
		"role":     "manager",
	}
	if resp, err := authorizedRequest(http.MethodPost, apiURL+"/api/auth/register", register); err == nil {
		resp.Body.Close()
	}

	resp, err := authorizedRequest(http.MethodPost, apiURL+"/api/auth/login", map[string]string{
		"username": "simulator",
		"password": "simulator-pass",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status %d", resp.StatusCode)
	}
	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return err
	}
	authToken = loginResp.Token
	return nil
}

func createVehicle(apiURL string, n int) (Vehicle, error) {
	names := []string{"Tata LPT 1613", "Ashok Leyland Dost", "Eicher Pro 2049", "Mahindra Blazo", "BharatBenz 1217C"}
	types := []string{"Truck", "Van", "Pickup", "Trailer"}
	regions := []string{"North", "South", "East", "West", "Central"}

	v := Vehicle{
		Name:     names[rand.Intn(len(names))],
		Plate:    fmt.Sprintf("MH%02d%c%c%04d", rand.Intn(50)+1, 'A'+rand.Intn(26), 'A'+rand.Intn(26), rand.Intn(10000)),
		Type:     types[rand.Intn(len(types))],
		Capacity: float64(1000 + rand.Intn(9)*1000),
		Odometer: float64(10000 + rand.Intn(90000)),
		Year:     2019 + rand.Intn(6),
		Fuel:     []string{"Diesel", "Petrol", "CNG", "Electric"}[rand.Intn(4)],
		Region:   regions[rand.Intn(len(regions))],
	}
	resp, err := authorizedRequest(http.MethodPost, apiURL+"/api/vehicles", v)
	if err != nil {
		return Vehicle{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return Vehicle{}, fmt.Errorf("create vehicle %d: status %d", n, resp.StatusCode)
	}
	var created Vehicle
	err = json.NewDecoder(resp.Body).Decode(&created)
	return created, err
}

func createDriver(apiURL string, n int) (Driver, error) {
	names := []string{"Ramesh Kumar", "Suresh Patil", "Amit Verma", "Vikas Singh", "Manoj Yadav", "Rajesh Nair"}
	d := Driver{
		Name:          names[rand.Intn(len(names))],
		LicenseNo:     fmt.Sprintf("MH-%d-%06d", 2015+rand.Intn(9), rand.Intn(1000000)),
		Category:      []string{"Light", "Medium", "Heavy"}[rand.Intn(3)],
		LicenseExpiry: time.Now().AddDate(1+rand.Intn(4), 0, 0),
		SafetyScore:   60 + rand.Intn(40),
		Phone:         "+91 98" + strconv.Itoa(100000000+rand.Intn(900000000))[:8],
		Joined:        time.Now().AddDate(-rand.Intn(5), 0, 0),
	}
	resp, err := authorizedRequest(http.MethodPost, apiURL+"/api/drivers", d)
	if err != nil {
		return Driver{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return Driver{}, fmt.Errorf("create driver %d: status %d", n, resp.StatusCode)
	}
	var created Driver
	err = json.NewDecoder(resp.Body).Decode(&created)
	return created, err
}

// runTripCycle drives one trip through its whole lifecycle: create a
// draft, dispatch it, then complete or cancel it.
func runTripCycle(apiURL string, vehicle Vehicle, driver Driver) (Vehicle, error) {
	origin := cities[rand.Intn(len(cities))]
	destination := cities[rand.Intn(len(cities))]
	for destination == origin {
		destination = cities[rand.Intn(len(cities))]
	}
	distance := float64(80 + rand.Intn(1200))

	trip := Trip{
		VehicleID:   vehicle.ID,
		DriverID:    driver.ID,
		Origin:      origin,
		Destination: destination,
		CargoType:   cargoTypes[rand.Intn(len(cargoTypes))],
		CargoWeight: vehicle.Capacity * (0.4 + rand.Float64()*0.6),
		EstimatedKm: distance,
		Revenue:     distance * (15 + rand.Float64()*20),
		Date:        time.Now(),
	}
	resp, err := authorizedRequest(http.MethodPost, apiURL+"/api/trips", trip)
	if err != nil {
		return vehicle, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return vehicle, fmt.Errorf("create trip: status %d", resp.StatusCode)
	}
	var created Trip
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return vehicle, err
	}

	if resp, err := authorizedRequest(http.MethodPost, apiURL+"/api/trips/"+created.ID+"/dispatch", nil); err != nil {
		return vehicle, err
	} else {
		resp.Body.Close()
	}

	// One in five dispatched trips gets cancelled instead of completed.
	if rand.Intn(5) == 0 {
		resp, err := authorizedRequest(http.MethodPost, apiURL+"/api/trips/"+created.ID+"/cancel", nil)
		if err != nil {
			return vehicle, err
		}
		resp.Body.Close()
		log.WithField("trip", created.ID).Info("trip cancelled")
		return vehicle, nil
	}

	finalOdometer := vehicle.Odometer + distance*(0.9+rand.Float64()*0.3)
	resp2, err := authorizedRequest(http.MethodPost, apiURL+"/api/trips/"+created.ID+"/complete",
		map[string]float64{"finalOdometer": finalOdometer})
	if err != nil {
		return vehicle, err
	}
	resp2.Body.Close()
	vehicle.Odometer = finalOdometer
	log.WithFields(log.Fields{"trip": created.ID, "odometer": finalOdometer}).Info("trip completed")
	return vehicle, nil
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	fleetSize := 5
	if v := os.Getenv("FLEET_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			fleetSize = parsed
		}
	}
	interval := 5 * time.Second
	if v := os.Getenv("TRIP_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			interval = parsed
		}
	}

	if err := login(apiURL); err != nil {
		log.WithError(err).Fatal("simulator login failed")
	}

	var vehicles []Vehicle
	var drivers []Driver
	for i := 0; i < fleetSize; i++ {
		v, err := createVehicle(apiURL, i)
		if err != nil {
			log.WithError(err).Fatal("failed to create vehicle")
		}
		vehicles = append(vehicles, v)

		d, err := createDriver(apiURL, i)
		if err != nil {
			log.WithError(err).Fatal("failed to create driver")
		}
		drivers = append(drivers, d)
	}
	log.WithField("fleet_size", fleetSize).Info("fleet created, starting trip cycles")

	for {
		i := rand.Intn(fleetSize)
		updated, err := runTripCycle(apiURL, vehicles[i], drivers[i])
		if err != nil {
			log.WithError(err).Error("trip cycle failed")
		} else {
			vehicles[i] = updated
		}
		time.Sleep(interval)
	}
}
