package core

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
)

// Controller handle all base methods
type Controller struct {
}

var Config Configuration

// SendJSON marshals v to a json struct and sends appropriate headers to w
func (c *Controller) SendJSON(w http.ResponseWriter, v interface{}, code int) {
	w.Header().Add("Content-Type", "application/json")
	w.Header().Add("Access-Control-Allow-Origin", "*")

	var tmp interface{}
	t1 := reflect.TypeOf(v).String()
	t2 := reflect.TypeOf(ResponseData{}).String()
	if t1 == t2 || t1 == "*"+t2 {
		tmp = v
	} else {
		tmp = ResponseData{
			Status: 1,
			Data:   v,
		}
	}

	b, err := json.Marshal(tmp)
	if err != nil {
		log.Print(fmt.Sprintf("Error while encoding JSON: %v", err))
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error": "Internal server error"}`)
	} else {
		w.WriteHeader(code)
		io.WriteString(w, string(b))
	}
}

// SendJSONPaging wraps v in the envelope together with the paging block.
func (c *Controller) SendJSONPaging(w http.ResponseWriter, r *http.Request, paging *Paging, v interface{}, code int) {
	c.SendJSON(w, &ResponseData{
		Status: 1,
		Data:   v,
		Paging: paging,
	}, code)
}

// SendPlainJSON writes v without the ResponseData envelope, for endpoints
// whose wire format is fixed by the frontend contract.
func (c *Controller) SendPlainJSON(w http.ResponseWriter, v interface{}, code int) {
	w.Header().Add("Content-Type", "application/json")
	w.Header().Add("Access-Control-Allow-Origin", "*")

	b, err := json.Marshal(v)
	if err != nil {
		log.Print(fmt.Sprintf("Error while encoding JSON: %v", err))
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error": "Internal server error"}`)
		return
	}
	w.WriteHeader(code)
	w.Write(b)
}

// GetContent of the request inside given struct
func (c *Controller) GetContent(v interface{}, r *http.Request) error {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	err = json.Unmarshal(body, v)
	if err != nil {
		log.Println(err)
		return err
	}

	return nil
}

// HandleError write error on response and return false if there is no error
func (c *Controller) HandleError(err error, w http.ResponseWriter) bool {
	return c.HandleErrorWithStatus(err, w, http.StatusInternalServerError)
}

// HandleErrorWithStatus write error on response and return false if there is no error
func (c *Controller) HandleErrorWithStatus(err error, w http.ResponseWriter, statusCode int) bool {
	if err == nil {
		return false
	}

	msg := ResponseData{
		Status:  999,
		Message: "An error occured",
		Detail:  err.Error(),
	}

	c.SendJSON(w, &msg, statusCode)
	return true
}

// HandleNotFoundError write a 404 on response and return false if there is no error
func (c *Controller) HandleNotFoundError(err error, w http.ResponseWriter) bool {
	if err == nil {
		return false
	}

	msg := ResponseData{
		Status:  999,
		Message: "Not found",
		Detail:  err.Error(),
	}

	c.SendJSON(w, &msg, http.StatusNotFound)
	return true
}

// HandleUnauthorizedError write error on response and return false if there is no error
func (c *Controller) HandleUnauthorizedError(err error, w http.ResponseWriter) bool {
	if err == nil {
		return false
	}

	msg := ResponseData{
		Status:  997,
		Message: "You are not authorized",
		Detail:  err.Error(),
	}

	c.SendJSON(w, &msg, http.StatusUnauthorized)
	return true
}

func (c *Controller) OptionsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Add("Access-Control-Allow-Headers", "Authorization")
	w.Header().Add("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Add("Access-Control-Allow-Headers", "X-Admin-Key")
	w.Header().Add("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")

	w.WriteHeader(http.StatusOK)
}

func (c *Controller) SendFileWithName(w http.ResponseWriter, r *http.Request, filepath, filename string) {
	w.Header().Add("Content-Disposition", filename)
	w.Header().Add("Access-Control-Allow-Origin", "*")
	w.Header().Add("Access-Control-Expose-Headers", "Content-Disposition,Access-Control-Allow-Origin,")
	http.ServeFile(w, r, filepath)
}

func (c *Controller) GetPaging(values url.Values) *Paging {
	paging := Paging{
		Page:   -1,
		Offset: -1,
		Limit:  -1,
	}
	if len(values) > 0 {
		if val, ok := values["page"]; ok && len(val) > 0 && val[0] != "" {
			paging.Page, _ = strconv.Atoi(val[0])
		}
		if val, ok := values["per_page"]; ok && len(val) > 0 && val[0] != "" {
			paging.PerPage, _ = strconv.Atoi(val[0])
		}
		if val, ok := values["limit"]; ok && len(val) > 0 && val[0] != "" {
			paging.Limit, _ = strconv.Atoi(val[0])
		}
		if val, ok := values["offset"]; ok && len(val) > 0 && val[0] != "" {
			paging.Offset, _ = strconv.Atoi(val[0])
		}
	}

	if paging.Limit > 0 || paging.Offset > 0 {
		return &paging
	}
	if paging.Page >= 0 {
		if paging.PerPage > 0 {
			paging.Limit = paging.PerPage
		}
		paging.Offset = paging.Page * paging.PerPage
	} else {
		paging.Page = 0
		paging.PerPage = 200
	}

	return &paging
}

const letterBytes = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPRSTUVWXYZ123456789"
const (
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

func RandomString(n int) string {
	b := make([]byte, n)
	// A rand.Int63() generates 63 random bits, enough for letterIdxMax letters!
	for i, cache, remain := n-1, rand.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = rand.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}

	return string(b)
}

func (c *Controller) RandomString(n int) string {
	return RandomString(n)
}
