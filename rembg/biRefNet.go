package rembg

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/segmentio/ksuid"

	nhttp "github.com/naumvv/RemBG/util/http"
)

const (
	BiRefNetModel = "BiRefNet"

	uploadPath = "api/upload/image"
	promptPath = "api/prompt"
	viewPath   = "api/view"
)

//go:embed workflow.json
var workflowData string

// BiRefNetRemBG removes backgrounds through a ComfyUI-style BiRefNet
// inference server: upload the image, submit the workflow prompt, fetch
// the resulting matte and apply it as the alpha channel.
type BiRefNetRemBG struct {
	baseURL string
	cli     nhttp.IClient
}

func NewBiRefNetRemBG(baseURL string) *BiRefNetRemBG {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &BiRefNetRemBG{
		baseURL: baseURL,
		cli:     nhttp.NewHTTPClient(),
	}
}

func (b *BiRefNetRemBG) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	src := resizeWithinMax(toNRGBA(img), maxInputSize)

	uploaded, err := b.uploadImage(ctx, src)
	if err != nil {
		return nil, err
	}

	matteName, err := b.prompt(ctx, uploaded)
	if err != nil {
		return nil, err
	}

	matte, err := b.fetchResult(ctx, matteName)
	if err != nil {
		return nil, err
	}

	return applyMatte(src, matte), nil
}

type uploadImageResp struct {
	Name      string `json:"name"`
	Subfolder string `json:"subfolder"`
	Type      string `json:"type"`
}

/*
	curl -X POST "$BASE_URL/api/upload/image" \
	  -F "image=@my_image.png" \
	  -F "type=input" \
	  -F "overwrite=true"

{"name": "my_image1.png", "subfolder": "", "type": "input"}
*/
func (b *BiRefNetRemBG) uploadImage(ctx context.Context, img *image.NRGBA) (string, error) {
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		return "", fmt.Errorf("png encode: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", ksuid.New().String()+".png")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(encoded.Bytes()); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}

	_ = writer.WriteField("type", "input")
	_ = writer.WriteField("overwrite", "true")
	_ = writer.Close()

	resp := &uploadImageResp{}
	reqParam := &nhttp.RequestParam{
		RequestURI: b.baseURL + uploadPath,
		Method:     "POST",
		Header:     map[string]string{"Content-Type": writer.FormDataContentType()},
		Body:       body,
		Response:   resp,
	}
	if err := b.cli.DoHTTPRequest(ctx, reqParam); err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	if resp.Name == "" {
		return "", fmt.Errorf("upload response missing image name")
	}

	slog.Debug("uploaded image", "name", resp.Name, "type", resp.Type)

	return resp.Name, nil
}

type promptResp struct {
	Name string `json:"name"`
}

/*
	curl -X POST "$BASE_URL/api/prompt" \
	  -H "Content-Type: application/json" \
	  -d '{"prompt": '"$(cat workflow.json)"'}'
*/
func (b *BiRefNetRemBG) prompt(ctx context.Context, imageName string) (string, error) {
	workflow := strings.Replace(workflowData, "MyImage.png", imageName, 1)

	wk := map[string]any{}
	if err := json.Unmarshal([]byte(workflow), &wk); err != nil {
		return "", fmt.Errorf("unmarshal workflow data: %w", err)
	}

	body, err := json.Marshal(map[string]any{"prompt": wk})
	if err != nil {
		return "", fmt.Errorf("marshal workflow data: %w", err)
	}

	resp := &promptResp{}
	reqParam := &nhttp.RequestParam{
		RequestURI: b.baseURL + promptPath,
		Method:     "POST",
		Header:     map[string]string{"Content-Type": "application/json"},
		Body:       body,
		Response:   resp,
	}
	if err := b.cli.DoHTTPRequest(ctx, reqParam); err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	if resp.Name == "" {
		return "", fmt.Errorf("prompt response missing result name")
	}

	slog.Debug("prompt completed", "result", resp.Name)

	return resp.Name, nil
}

func (b *BiRefNetRemBG) fetchResult(ctx context.Context, name string) (image.Image, error) {
	var raw []byte
	reqParam := &nhttp.RequestParam{
		RequestURI: b.baseURL + viewPath + "?filename=" + url.QueryEscape(name) + "&type=output",
		Method:     "GET",
		Response:   &raw,
	}
	if err := b.cli.DoHTTPRequest(ctx, reqParam); err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	matte, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode matte: %w", err)
	}
	return matte, nil
}
